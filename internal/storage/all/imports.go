// Package all registers every built-in storage backend with the storage
// factory. Import it for side effects:
//
//	import _ "movieetl/internal/storage/all"
package all

import (
	_ "movieetl/internal/storage/postgres"
	_ "movieetl/internal/storage/sqlite"
)
