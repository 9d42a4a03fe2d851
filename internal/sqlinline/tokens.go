package sqlinline

const QInsertAuthToken = `--sql d07c4b92-e635-4817-a0f9-3b5d8c1e6f24
insert into auth_tokens (id, user_id, purpose, token_hash, expires_at, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::timestamptz, now())
returning id;
`

// QConsumeVerifyToken marks the token used and the user verified in one
// statement. Expired or already-consumed tokens match nothing.
const QConsumeVerifyToken = `--sql 40e8f6a1-92d4-4b30-8c57-1f0a3e9d5c68
with consumed as (
    update auth_tokens
    set consumed_at = now()
    where token_hash = $1::text
      and purpose = 'email_verify'
      and consumed_at is null
      and expires_at > now()
    returning user_id
)
update users u
set email_verified = true, updated_at = now()
where u.id = (select user_id from consumed)
returning u.id;
`

// QConsumeResetToken consumes the token, swaps the password hash and revokes
// every live session for the user in one statement.
const QConsumeResetToken = `--sql 7a1d9e53-c480-4f26-b9d1-64e0f8a2c735
with consumed as (
    update auth_tokens
    set consumed_at = now()
    where token_hash = $1::text
      and purpose = 'password_reset'
      and consumed_at is null
      and expires_at > now()
    returning user_id
),
updated as (
    update users u
    set password_hash = $2::text, updated_at = now()
    where u.id = (select user_id from consumed)
    returning u.id
),
revoked as (
    delete from sessions s
    where s.user_id = (select id from updated)
    returning s.id
)
select id from updated;
`
