package mysql

const upsertCountrySQL = `
INSERT INTO countries
  (code, position, raw)
VALUES
  (?, ?, ?)
ON DUPLICATE KEY UPDATE
  position   = VALUES(position),
  raw        = VALUES(raw),
  updated_at = CURRENT_TIMESTAMP
`

// Position reproduces the order of the ingested document.
const listCountriesSQL = `
SELECT raw
FROM countries
ORDER BY position, code
`

const deleteAllCountriesSQL = `DELETE FROM countries`

// deleteCountriesNotInPrefix is completed with one placeholder per kept code.
const deleteCountriesNotInPrefix = `DELETE FROM countries WHERE code NOT IN (`
