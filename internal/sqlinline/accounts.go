package sqlinline

const QSelectAccount = `--sql 2e9d5a71-6f38-4b0c-85d9-a1c4e7b20f86
select id, name, credit_balance, plan, plan_status, created_at, updated_at
from accounts
where id = $1::uuid
limit 1;
`

const QListAccounts = `--sql 8a4f0c36-d215-47e9-b3a8-50c6d9e2f174
select a.id, a.name, a.credit_balance, a.plan, a.plan_status, a.created_at, a.updated_at,
       count(u.id) as user_count
from accounts a
left join users u on u.account_id = a.id
group by a.id
order by a.created_at desc
limit $1::int offset $2::int;
`
