package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wator/geom"
)

func TestSize_AreaAndValid(t *testing.T) {
	s := geom.Size{W: 4, H: 3}
	assert.Equal(t, 12, s.Area())
	assert.True(t, s.Valid())

	assert.False(t, geom.Size{W: 0, H: 3}.Valid())
	assert.False(t, geom.Size{W: 4, H: -1}.Valid())
}
