package sqlinline

const QInsertSession = `--sql 16b9d5f2-80c3-4a74-9e21-f5d8a0c7b346
insert into sessions (id, user_id, token_hash, country, created_at, expires_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, now(), $4::timestamptz)
returning id;
`

// QSelectSessionUser resolves a live session to its user and role. Expired
// sessions are invisible here; the janitor removes them later.
const QSelectSessionUser = `--sql 63f2a8c0-1d97-4e45-b6a0-c8d4e2f95b17
select s.user_id, u.account_id, u.role, u.locale
from sessions s
join users u on u.id = s.user_id
where s.token_hash = $1::text
  and s.expires_at > now()
limit 1;
`

const QDeleteSessionByHash = `--sql ab06e3d8-74f1-4c29-95b8-0e6c1d9f2a43
delete from sessions where token_hash = $1::text;
`
