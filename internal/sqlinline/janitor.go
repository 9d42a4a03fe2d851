package sqlinline

const QPurgeExpiredSessions = `--sql 29d1c7e5-0f84-4a36-b9d0-57e3a8f1c642
delete from sessions where expires_at <= now();
`

const QPurgeDeadAuthTokens = `--sql 6c38e0a2-b591-4d47-8f26-a1d9c4e7f083
delete from auth_tokens where expires_at <= now() or consumed_at is not null;
`
