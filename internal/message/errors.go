// AngelaMos | 2026
// errors.go

package message

import (
	"fmt"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
)

var ErrNotFound = fmt.Errorf("message %w", core.ErrNotFound)
