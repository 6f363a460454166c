package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS export_meta (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    exported_at          TEXT NOT NULL,
    as_of                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
    project_id           TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    description          TEXT NOT NULL,
    deadline             TEXT NOT NULL,
    progress             INTEGER NOT NULL,
    tasks_completed      INTEGER NOT NULL,
    total_tasks          INTEGER NOT NULL,
    days_remaining       INTEGER NOT NULL,
    urgency              TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    task_id              TEXT PRIMARY KEY,
    project_id           TEXT NOT NULL REFERENCES projects(project_id) ON DELETE CASCADE,
    title                TEXT NOT NULL,
    assignee             TEXT NOT NULL,
    due_date             TEXT NOT NULL,
    status               TEXT NOT NULL CHECK (status IN ('pending', 'in-progress', 'completed'))
);

CREATE TABLE IF NOT EXISTS budget_items (
    item_id              TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    concept              TEXT NOT NULL,
    type                 TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    amount_cents         INTEGER NOT NULL CHECK (amount_cents >= 0),
    responsible          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
    report_id            TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    project_name         TEXT NOT NULL,
    report_date          TEXT NOT NULL,
    content              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
`
