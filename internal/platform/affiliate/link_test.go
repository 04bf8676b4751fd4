package affiliate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLink(t *testing.T) {
	assert.Equal(t, "https://www.amazon.com/dp/B001?tag=demo-20&linkCode=ll1", Link("B001", "demo-20"))
}
