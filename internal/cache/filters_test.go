package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbase/internal/core"
	"donorbase/internal/store/mocks"
)

func TestFilterStore_ReadThroughAndInvalidateOnSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGlobalFilterStore(ctrl)
	ctx := context.Background()

	il := core.GlobalFilters{CountryIDs: []string{"IL"}}
	us := core.GlobalFilters{CountryIDs: []string{"US"}}

	gomock.InOrder(
		next.EXPECT().GlobalFilters(gomock.Any(), "u1").Return(il, nil),
		next.EXPECT().SaveGlobalFilters(gomock.Any(), "u1", us).Return(nil),
		next.EXPECT().GlobalFilters(gomock.Any(), "u1").Return(us, nil),
	)

	fs := NewFilterStore(next, 10, time.Minute)

	got, err := fs.GlobalFilters(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, il, got)

	got, err = fs.GlobalFilters(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, il, got, "second read is served from cache")

	require.NoError(t, fs.SaveGlobalFilters(ctx, "u1", us))

	got, err = fs.GlobalFilters(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, us, got)
}

func TestFilterStore_ErrorsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGlobalFilterStore(ctrl)
	boom := errors.New("db down")

	next.EXPECT().GlobalFilters(gomock.Any(), "u1").Return(core.GlobalFilters{}, boom).Times(2)

	fs := NewFilterStore(next, 10, time.Minute)
	_, err := fs.GlobalFilters(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
	_, err = fs.GlobalFilters(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, fs.Cache().Size())
}

func TestFilterStore_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGlobalFilterStore(ctrl)
	next.EXPECT().GlobalFilters(gomock.Any(), gomock.Any()).Return(core.GlobalFilters{}, nil).Times(3)

	fs := NewFilterStore(next, 10, time.Minute)
	ctx := context.Background()
	_, _ = fs.GlobalFilters(ctx, "u1")
	_, _ = fs.GlobalFilters(ctx, "u2")
	fs.Invalidate()
	assert.Equal(t, 0, fs.Cache().Size())
	_, _ = fs.GlobalFilters(ctx, "u1")
}
