package sqlinline

// QCreateOrderWithDebit creates a translation request and debits the owning
// account atomically. When the balance is short the guard in the debit CTE
// produces no row and the whole statement inserts nothing.
const QCreateOrderWithDebit = `--sql 0a5e7c29-d841-4f63-b0a7-29c6e8d5f130
with debit as (
    update accounts a
    set credit_balance = a.credit_balance - $2::bigint,
        updated_at = now()
    from users u
    where u.id = $1::uuid
      and a.id = u.account_id
      and a.credit_balance >= $2::bigint
    returning a.id as account_id
),
ledger as (
    insert into credit_transactions (id, account_id, user_id, amount, tx_type, description, created_at)
    select gen_random_uuid(), d.account_id, $1::uuid, -$2::bigint, 'order_debit', $3::text, now()
    from debit d
    returning account_id
)
insert into translation_requests (
    id, user_id, file_name, file_format, file_size, word_count, char_count, image_count,
    subject, source_lang, target_langs, workflow, credits_required, total_cost,
    status, priority, due_date, completion, assignee_id, created_at, updated_at
)
select gen_random_uuid(), $1::uuid, $4::text, $5::text, $6::bigint, $7::bigint, $8::bigint, $9::int,
       $10::text, $11::text, $12::text[], $13::text, $2::bigint, $14::text,
       'pending', $15::text, $16::timestamptz, 0, null, now(), now()
from debit
returning id, status, created_at;
`

// QSelectOrder loads one order, optionally scoped to an owner. A null owner
// argument is the admin path.
const QSelectOrder = `--sql 82d6f0b3-1c95-44e7-a2d8-60b4f7e9c215
select id, user_id, file_name, file_format, file_size, word_count, char_count, image_count,
       subject, source_lang, target_langs, workflow, credits_required, total_cost,
       status, priority, due_date, completion, assignee_id, created_at, updated_at
from translation_requests
where id = $1::uuid
  and ($2::uuid is null or user_id = $2::uuid)
limit 1;
`

const QListOrdersForUser = `--sql 4f9b2e17-a068-4c53-bd14-87e2c5f0d9a3
select id, user_id, file_name, file_format, file_size, word_count, char_count, image_count,
       subject, source_lang, target_langs, workflow, credits_required, total_cost,
       status, priority, due_date, completion, assignee_id, created_at, updated_at
from translation_requests
where user_id = $1::uuid
order by created_at desc
limit $2::int offset $3::int;
`

// QSelectOrderForAccount scopes a single-order read to the API key's account.
const QSelectOrderForAccount = `--sql 1c4f8a27-d9e0-4b53-86f1-b3d7c5e20a96
select tr.id, tr.user_id, tr.file_name, tr.file_format, tr.file_size, tr.word_count, tr.char_count, tr.image_count,
       tr.subject, tr.source_lang, tr.target_langs, tr.workflow, tr.credits_required, tr.total_cost,
       tr.status, tr.priority, tr.due_date, tr.completion, tr.assignee_id, tr.created_at, tr.updated_at
from translation_requests tr
join users u on u.id = tr.user_id
where tr.id = $1::uuid
  and u.account_id = $2::uuid
limit 1;
`

const QListOrdersForAccount = `--sql b3c8a5d1-47f2-4e90-8b36-d1e9f4a07c52
select tr.id, tr.user_id, tr.file_name, tr.file_format, tr.file_size, tr.word_count, tr.char_count, tr.image_count,
       tr.subject, tr.source_lang, tr.target_langs, tr.workflow, tr.credits_required, tr.total_cost,
       tr.status, tr.priority, tr.due_date, tr.completion, tr.assignee_id, tr.created_at, tr.updated_at
from translation_requests tr
join users u on u.id = tr.user_id
where u.account_id = $1::uuid
order by tr.created_at desc
limit $2::int offset $3::int;
`

const QCountOrdersForAccount = `--sql 71e0d4c6-95b8-4a27-bf53-2c8d6e1f0a94
select count(*)
from translation_requests tr
join users u on u.id = tr.user_id
where u.account_id = $1::uuid;
`

// QPatchOrder updates only the provided fields; null arguments keep the
// current value. Status transition rules are enforced before this runs.
const QPatchOrder = `--sql ce17b9a4-d203-4586-9f1e-7a4b0c8d2e65
update translation_requests
set status = coalesce($3::text, status),
    priority = coalesce($4::text, priority),
    completion = coalesce($5::int, completion),
    due_date = case when $6::boolean then $7::timestamptz else due_date end,
    assignee_id = case when $8::boolean then $9::uuid else assignee_id end,
    updated_at = now()
where id = $1::uuid
  and ($2::uuid is null or user_id = $2::uuid)
returning id, status, priority, completion, updated_at;
`

const QSelectOrderStatus = `--sql 58a3e6f0-b742-4d19-8c05-e9f1d2b7a630
select status, user_id
from translation_requests
where id = $1::uuid
limit 1;
`
