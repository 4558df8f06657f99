package graphdb

// schemaSQL is the DDL for the circular graph. Node tables carry the
// create_by / created_at / batch_id provenance columns; edge tables
// reference nodes with cascading deletes so purging a node also removes
// its edges.
const schemaSQL = `
-- Circular nodes, one per GCN circular
CREATE TABLE IF NOT EXISTS circulars (
    circular_id TEXT PRIMARY KEY,
    subject TEXT,
    created_on TEXT,
    submitter TEXT,
    email TEXT,
    intent TEXT,
    raw_text TEXT,
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL
);

-- Collaboration nodes
CREATE TABLE IF NOT EXISTS collaborations (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL
);

-- Author nodes; the empty affiliation stands in for "unknown" so the
-- uniqueness constraint still holds
CREATE TABLE IF NOT EXISTS authors (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    affiliation TEXT NOT NULL DEFAULT '',
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL,
    UNIQUE(name, affiliation)
);

-- Author -> circular edges
CREATE TABLE IF NOT EXISTS authored (
    author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
    circular_id TEXT NOT NULL REFERENCES circulars(circular_id) ON DELETE CASCADE,
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL,
    UNIQUE(author_id, circular_id)
);

-- Author -> collaboration edges
CREATE TABLE IF NOT EXISTS member_of (
    author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
    collaboration_id INTEGER NOT NULL REFERENCES collaborations(id) ON DELETE CASCADE,
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL,
    UNIQUE(author_id, collaboration_id)
);

-- Circular -> collaboration edges
CREATE TABLE IF NOT EXISTS reported_by (
    circular_id TEXT NOT NULL REFERENCES circulars(circular_id) ON DELETE CASCADE,
    collaboration_id INTEGER NOT NULL REFERENCES collaborations(id) ON DELETE CASCADE,
    create_by TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    batch_id TEXT NOT NULL,
    UNIQUE(circular_id, collaboration_id)
);

-- Question/answer audit log
CREATE TABLE IF NOT EXISTS query_log (
    id INTEGER PRIMARY KEY,
    question TEXT NOT NULL,
    query TEXT,
    answer TEXT,
    retries INTEGER DEFAULT 0,
    row_count INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_circulars_created_on ON circulars(created_on);
CREATE INDEX IF NOT EXISTS idx_authors_name ON authors(name);
CREATE INDEX IF NOT EXISTS idx_authored_circular ON authored(circular_id);
CREATE INDEX IF NOT EXISTS idx_member_of_collab ON member_of(collaboration_id);
`
