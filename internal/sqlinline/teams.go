package sqlinline

const QInsertTeam = `--sql c7b2e948-0a53-4d16-bf80-69e3a5d1c427
insert into teams (id, name, description, billing_email, credit_balance, plan, plan_status, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, 0, 'starter', 'active', now(), now())
returning id, created_at;
`

const QPatchTeam = `--sql 5d0c8f21-9b67-4e34-a2d5-c8f1b0e64a93
update teams
set name = coalesce($2::text, name),
    description = coalesce($3::text, description),
    billing_email = coalesce($4::text, billing_email),
    updated_at = now()
where id = $1::uuid
returning id;
`

const QSelectTeam = `--sql a1e6d083-7c49-452b-98f6-3b0d2e5c7a18
select t.id, t.name, t.description, t.billing_email, t.credit_balance, t.plan, t.plan_status,
       t.created_at, t.updated_at,
       (select count(*) from users u where u.team_id = t.id) as member_count
from teams t
where t.id = $1::uuid
limit 1;
`

const QListTeams = `--sql 0f7b3d52-8e14-4a69-bc27-d50a9e8c1f63
select t.id, t.name, t.description, t.billing_email, t.credit_balance, t.plan, t.plan_status,
       t.created_at, t.updated_at,
       (select count(*) from users u where u.team_id = t.id) as member_count
from teams t
order by t.created_at desc
limit $1::int offset $2::int;
`

// QDeleteTeamIfEmpty refuses to remove a team that still has assigned users;
// callers distinguish "missing" from "still has members" with QSelectTeam.
const QDeleteTeamIfEmpty = `--sql d94a7f60-2c85-4b13-9e07-61f8c3a0d5b2
delete from teams t
where t.id = $1::uuid
  and not exists (select 1 from users u where u.team_id = t.id)
returning t.id;
`

// QAddTeamCredits appends the ledger row and moves the team balance in one
// statement.
const QAddTeamCredits = `--sql 3b8e1c74-f605-4d29-a83b-97d0e4f2c516
with tx as (
    insert into credit_transactions (id, team_id, user_id, amount, tx_type, description, created_at)
    values (gen_random_uuid(), $1::uuid, $2::uuid, $3::bigint, $4::text, $5::text, now())
    returning team_id, amount
)
update teams t
set credit_balance = t.credit_balance + (select amount from tx),
    updated_at = now()
where t.id = (select team_id from tx)
returning t.credit_balance;
`
