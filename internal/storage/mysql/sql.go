package mysql

// One table per collection; each row is a whole document keyed by an
// ObjectID-shaped hex id so identifiers look the same as on MongoDB.
const createCollectionSQL = `
CREATE TABLE IF NOT EXISTS %s (
  id         CHAR(24)  NOT NULL PRIMARY KEY,
  doc        JSON      NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertDocPrefix = "INSERT INTO %s (id, doc)\nVALUES "

// Rows come back in insertion order, the closest thing to a natural order.
const findDocsSQL = `
SELECT id, doc
FROM %s
%s
ORDER BY created_at, id
LIMIT ?
`

const findDocByIDSQL = `
SELECT id, doc
FROM %s
WHERE id = ?
`

const countDocsSQL = `SELECT COUNT(*) FROM %s`

// fieldMatch tests one document field against a case-insensitive pattern.
const fieldMatch = "REGEXP_LIKE(JSON_UNQUOTE(JSON_EXTRACT(doc, '$.%s')), ?, 'i')"
