package get_all_bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	// Пустое значение и "all" означают отсутствие фильтра
	assert.Nil(t, ToServiceRequest("").Status)
	assert.Nil(t, ToServiceRequest("all").Status)

	req := ToServiceRequest("pending")
	require.NotNil(t, req.Status)
	assert.Equal(t, "pending", *req.Status)
}
