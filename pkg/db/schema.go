package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- One row per rendered fact-check report
CREATE TABLE IF NOT EXISTS reports (
    report_id TEXT PRIMARY KEY,          -- uuid
    created_at INTEGER NOT NULL,         -- unix milliseconds
    deployment TEXT NOT NULL,            -- popup or page
    input TEXT NOT NULL,
    language TEXT,                       -- ISO 639-1, empty when unknown
    summary TEXT,
    claim_count INTEGER DEFAULT 0,
    report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
CREATE INDEX IF NOT EXISTS idx_reports_deployment ON reports(deployment);
`
