package sqlinline

// QRegisterAccountUser creates the account and its first user in one
// statement. A duplicate email surfaces as a unique violation.
const QRegisterAccountUser = `--sql 3f1c2a84-9b1e-4e6a-8c1d-5a7b9e0d2f41
with new_account as (
    insert into accounts (id, name, credit_balance, plan, plan_status, created_at, updated_at)
    values (gen_random_uuid(), $1::text, 0, 'starter', 'active', now(), now())
    returning id
)
insert into users (id, account_id, email, name, password_hash, role, locale, preferred_languages, email_verified, totp_enabled, created_at, updated_at)
values (gen_random_uuid(), (select id from new_account), lower($2::text), $3::text, $4::text, 'client', $5::text, $6::text[], false, false, now(), now())
returning id, account_id;
`

const QSelectUserByEmail = `--sql 7d94c1b2-0f3a-4c58-b6e9-12d8a4f7c3e5
select id, account_id, name, password_hash, role, locale, email_verified, totp_enabled, coalesce(totp_secret, '')
from users
where email = lower($1::text)
limit 1;
`

const QSelectUserByID = `--sql b8e51f06-2c47-49d3-a1b5-9f0e6d3c8a72
select u.id, u.account_id, u.team_id, u.email, u.name, u.role, u.locale, u.preferred_languages,
       u.email_verified, u.totp_enabled, u.created_at, u.updated_at
from users u
where u.id = $1::uuid
limit 1;
`

// QInsertUserForAccount is the admin path: the user joins an existing account.
const QInsertUserForAccount = `--sql 4a6e8d20-7b5c-4f19-92e4-c3d1f0a8b6e7
insert into users (id, account_id, team_id, email, name, password_hash, role, locale, preferred_languages, email_verified, totp_enabled, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::uuid, lower($3::text), $4::text, $5::text, $6::text, $7::text, $8::text[], true, false, now(), now())
returning id;
`

// QPatchUser updates only the provided fields; null arguments keep the
// current value.
const QPatchUser = `--sql 9c2b7e43-5d81-4a06-bf37-e8a9d6c40f12
update users
set name = coalesce($2::text, name),
    role = coalesce($3::text, role),
    team_id = case when $4::boolean then $5::uuid else team_id end,
    locale = coalesce($6::text, locale),
    preferred_languages = coalesce($7::text[], preferred_languages),
    updated_at = now()
where id = $1::uuid
returning id;
`

const QDeleteUser = `--sql e7f3a951-8c26-4d7b-90a4-b5d2c8e16f39
delete from users where id = $1::uuid returning id;
`

const QSelectUserTOTP = `--sql 0b6d3e9a-57c2-4f81-bd64-9e2a5c0f7d18
select coalesce(totp_secret, ''), totp_enabled
from users
where id = $1::uuid
limit 1;
`

// QStageTOTPSecret stores a pending secret; 2FA stays off until verified.
const QStageTOTPSecret = `--sql 1d8f4c67-3a92-4e05-b8c1-f6e0a2d95b34
update users
set totp_secret = $2::text, totp_enabled = false, updated_at = now()
where id = $1::uuid
returning id;
`

const QEnableTOTP = `--sql 6b0a9d25-4e78-41c3-a5f2-08d7b3e9c614
update users
set totp_enabled = true, updated_at = now()
where id = $1::uuid and totp_secret is not null
returning id;
`

const QDisableTOTP = `--sql f25c8b90-1e64-4a37-bd08-73a9e4f1c2d6
update users
set totp_enabled = false, totp_secret = null, updated_at = now()
where id = $1::uuid
returning id;
`
