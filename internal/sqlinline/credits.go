package sqlinline

// QAddAccountCredits appends the ledger row and moves the account balance in
// one statement, so the stored balance always equals the ledger sum.
const QAddAccountCredits = `--sql 6e2d9b05-4a71-4f38-bc92-08e5d1c7a3f4
with tx as (
    insert into credit_transactions (id, account_id, user_id, amount, tx_type, description, created_at)
    values (gen_random_uuid(), $1::uuid, $2::uuid, $3::bigint, $4::text, $5::text, now())
    returning account_id, amount
)
update accounts a
set credit_balance = a.credit_balance + (select amount from tx),
    updated_at = now()
where a.id = (select account_id from tx)
returning a.credit_balance;
`

const QListAccountTransactions = `--sql 97c4f1e8-0b36-4d52-a7e9-5f2c8d0b1a64
select id, account_id, team_id, user_id, amount, tx_type, description, created_at
from credit_transactions
where account_id = $1::uuid
order by created_at desc
limit $2::int offset $3::int;
`
