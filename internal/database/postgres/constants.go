package postgres

// PostgreSQL Error Codes
const (
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin ledger transaction"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToGetAccount       = "failed to get account"
	ErrMsgFailedToListReferrals    = "failed to list referrals"
	ErrMsgFailedToGetWithdrawal    = "failed to get withdrawal"
	ErrMsgFailedToGetConfig        = "failed to get economy config"
	ErrMsgFailedToUpdateConfig     = "failed to update economy config"
	ErrMsgFailedToUpsertSubject    = "failed to upsert subject"
	ErrMsgFailedToInsertEntry      = "failed to insert ledger entry"
	ErrMsgFailedToAdjustBalance    = "failed to adjust balance"
	ErrMsgFailedToInsertReferral   = "failed to insert referral"
	ErrMsgFailedToInsertWithdrawal = "failed to insert withdrawal"
	ErrMsgInvalidNumeric           = "invalid numeric value"
)

// Error Messages - Event Log
const (
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToListEvents    = "failed to list events"
	ErrMsgFailedToCleanupEvents = "failed to clean up events"
)

// Queries
const (
	queryGetBalance = `SELECT balance::text FROM subjects WHERE subject_id = $1`

	queryGetBalanceForUpdate = `SELECT balance::text FROM subjects WHERE subject_id = $1 FOR UPDATE`

	querySubjectExists = `SELECT EXISTS (SELECT 1 FROM subjects WHERE subject_id = $1)`

	queryListReferrals = `
		SELECT r.referee_id, s.display_name, r.earned::text, r.created_at
		FROM referrals r
		JOIN subjects s ON s.subject_id = r.referee_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at, r.referee_id`

	// xmax is zero only for a freshly inserted row
	queryUpsertSubject = `
		INSERT INTO subjects (subject_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (subject_id) DO UPDATE
			SET display_name = CASE WHEN EXCLUDED.display_name = '' THEN subjects.display_name ELSE EXCLUDED.display_name END,
			    updated_at = NOW()
		RETURNING (xmax = 0)`

	queryInsertEntry = `
		INSERT INTO ledger_entries (entry_id, subject_id, reason, amount)
		VALUES ($1, $2, $3, $4::numeric)
		ON CONFLICT (subject_id, reason) DO NOTHING`

	queryAdjustBalance = `
		UPDATE subjects SET balance = balance + $2::numeric, updated_at = NOW()
		WHERE subject_id = $1
		RETURNING balance::text`

	queryInsertReferral = `
		INSERT INTO referrals (referee_id, referrer_id, earned)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (referee_id) DO NOTHING`

	queryGetWithdrawal = `
		SELECT request_id, accepted, reason, balance::text, created_at
		FROM withdrawals WHERE request_id = $1`

	queryInsertWithdrawal = `
		INSERT INTO withdrawals (request_id, subject_id, amount, address, accepted, reason, balance, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7::numeric, $8)
		ON CONFLICT (request_id) DO NOTHING`

	queryGetEconomyConfig = `
		SELECT accrual_rate::text, session_seconds, referral_reward::text, min_withdraw::text, exchange_rate::text
		FROM economy_config WHERE id`

	queryUpsertEconomyConfig = `
		INSERT INTO economy_config (id, accrual_rate, session_seconds, referral_reward, min_withdraw, exchange_rate)
		VALUES (TRUE, $1::numeric, $2, $3::numeric, $4::numeric, $5::numeric)
		ON CONFLICT (id) DO UPDATE SET
			accrual_rate = EXCLUDED.accrual_rate,
			session_seconds = EXCLUDED.session_seconds,
			referral_reward = EXCLUDED.referral_reward,
			min_withdraw = EXCLUDED.min_withdraw,
			exchange_rate = EXCLUDED.exchange_rate,
			updated_at = NOW()`

	queryInsertEvent = `
		INSERT INTO event_log (event_type, subject_id, payload, metadata)
		VALUES ($1, $2, $3, $4)`

	querySelectEvents = `
		SELECT id, event_type, subject_id, payload, metadata, created_at
		FROM event_log`

	queryDeleteEventsBefore = `DELETE FROM event_log WHERE created_at < $1`
)
