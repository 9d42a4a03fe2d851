package sqlinline

const QInsertAPIKey = `--sql 85c0d3f7-2ab9-4e61-9d48-f7b2e5a0c193
insert into api_keys (id, account_id, name, key_hash, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, now())
returning id, created_at;
`

const QSelectAPIKeyAccount = `--sql f9e24b80-6d15-4c73-a2e6-09c8d1f5b374
select k.id, k.account_id
from api_keys k
where k.key_hash = $1::text
  and k.revoked_at is null
limit 1;
`

const QRevokeAPIKey = `--sql 31a7f5d9-e0c2-4698-b51f-8d4a6e2c0b97
update api_keys
set revoked_at = now()
where id = $1::uuid and account_id = $2::uuid and revoked_at is null
returning id;
`

const QListAPIKeysForAccount = `--sql ba52e9c1-48d7-4f05-93ab-c6e1f0d8a429
select id, account_id, name, created_at, revoked_at
from api_keys
where account_id = $1::uuid
order by created_at desc;
`
