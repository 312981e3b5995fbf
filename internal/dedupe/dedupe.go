package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-heavy requests. Using a centralized singleflight.Group
// ensures only one database query runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// ListGroup deduplicates public lobby listing queries. The lobby browser
// polls frequently and every caller wants the same answer.
var ListGroup singleflight.Group
