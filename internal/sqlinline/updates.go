package sqlinline

// QInsertUpdate appends a project update and, for a status_change, mutates
// the parent order in the same statement. For other update types the null
// new-status argument leaves the parent untouched.
const QInsertUpdate = `--sql 9f48c2d7-36e0-4b15-a9c4-d07e5f8b1a26
with new_update as (
    insert into project_updates (id, request_id, author_id, note, update_type, new_status, created_at)
    select gen_random_uuid(), tr.id, $2::uuid, $3::text, $4::text, $5::text, now()
    from translation_requests tr
    where tr.id = $1::uuid
    returning id, request_id, new_status, created_at
)
update translation_requests tr
set status = coalesce((select new_status from new_update), tr.status),
    updated_at = now()
where tr.id = (select request_id from new_update)
returning (select id from new_update), tr.status, (select created_at from new_update);
`

const QListUpdatesForOrder = `--sql 24d7a0e9-5cb1-4f68-b3d2-80c9e6f4a517
select pu.id, pu.request_id, pu.author_id, pu.note, pu.update_type, pu.new_status, pu.created_at,
       u.name as author_name
from project_updates pu
join users u on u.id = pu.author_id
where pu.request_id = $1::uuid
order by pu.created_at desc;
`
