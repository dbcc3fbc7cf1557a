package db

// Schema for the durable visit log (append-only, one row per navigation)
const createVisitsTable = `
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    title TEXT,
    ip_address TEXT,
    location TEXT,
    visit_time TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_time ON visits(visit_time);
`

const insertVisit = `
INSERT INTO visits (url, title, ip_address, location, visit_time)
VALUES (?, ?, ?, ?, ?)
`

const selectVisits = `
SELECT id, url, title, ip_address, location, visit_time FROM visits
ORDER BY id ASC
`

// Newest N rows, returned oldest first
const selectRecentVisits = `
SELECT id, url, title, ip_address, location, visit_time FROM (
    SELECT id, url, title, ip_address, location, visit_time FROM visits
    ORDER BY id DESC
    LIMIT ?
)
ORDER BY id ASC
`

const selectLatestVisitTime = `
SELECT visit_time FROM visits ORDER BY id DESC LIMIT 1
`

const deleteVisits = `
DELETE FROM visits
`

// Schema for blocked domains (firewall)
const createFirewallTable = `
CREATE TABLE IF NOT EXISTS firewall (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    domain TEXT UNIQUE NOT NULL,
    reason TEXT,
    blocked_time DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// INSERT OR IGNORE keeps the first reason when a domain is blocked twice
const insertBlock = `
INSERT OR IGNORE INTO firewall (domain, reason)
VALUES (?, ?)
`

const deleteBlock = `
DELETE FROM firewall WHERE domain = ?
`

const selectBlocked = `
SELECT domain, COALESCE(reason, ''), blocked_time FROM firewall
ORDER BY domain ASC
`

const selectIsBlocked = `
SELECT COUNT(*) FROM firewall WHERE domain = ?
`

// Schema for saved pages
const createBookmarksTable = `
CREATE TABLE IF NOT EXISTS bookmarks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT UNIQUE NOT NULL,
    title TEXT,
    added_time TEXT NOT NULL
);
`

// Re-bookmarking a URL replaces its title and keeps when it was first added
const upsertBookmark = `
INSERT INTO bookmarks (url, title, added_time)
VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET title = excluded.title
`

const deleteBookmark = `
DELETE FROM bookmarks WHERE url = ?
`

// Untitled bookmarks sort by their URL
const selectBookmarks = `
SELECT url, COALESCE(title, ''), added_time FROM bookmarks
ORDER BY COALESCE(NULLIF(title, ''), url) COLLATE NOCASE ASC, url ASC
`

// Schema for user preferences
const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_time DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const upsertSetting = `
INSERT INTO settings (key, value, updated_time)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_time = CURRENT_TIMESTAMP
`

const selectSetting = `
SELECT value FROM settings WHERE key = ?
`

const selectSettings = `
SELECT key, value, updated_time FROM settings
ORDER BY key ASC
`

const deleteSetting = `
DELETE FROM settings WHERE key = ?
`
