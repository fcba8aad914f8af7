package web

import (
	"context"
	"testing"
	"travelbook/pkg/client"

	"github.com/stretchr/testify/assert"
)

func TestListView_Load(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		api := newFakeAPI(annToRome())
		view := NewListView()
		assert.True(t, view.Loading())

		view.Load(context.Background(), api)

		assert.Equal(t, StateLoaded, view.State)
		assert.NoError(t, view.Err)
		assert.Len(t, view.Bookings, 1)
	})

	t.Run("error replaces the list", func(t *testing.T) {
		api := newFakeAPI(annToRome())
		view := NewListView()
		view.Load(context.Background(), api)

		api.err = client.ErrTransport
		view.Load(context.Background(), api)

		assert.True(t, view.Failed())
		assert.ErrorIs(t, view.Err, client.ErrTransport)
		assert.Nil(t, view.Bookings)
	})
}
