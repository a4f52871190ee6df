// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/storectl/internal/mutation"
	"github.com/staranto/storectl/internal/querycache"
	"github.com/staranto/storectl/internal/validation"
)

type fakeRemote struct {
	mu       sync.Mutex
	current  Profile
	reads    int
	updates  []Patch
	readErr  error
	writeErr error
	// during observes the cache while the write is in flight.
	during func()
}

func (f *fakeRemote) ManagedRestaurant(context.Context) (Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return Profile{}, f.readErr
	}
	return f.current, nil
}

func (f *fakeRemote) UpdateProfile(_ context.Context, p Patch) error {
	if f.during != nil {
		f.during()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, p)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.current = Merge(f.current, p)
	return nil
}

type signals struct{ got []mutation.Signal }

func (s *signals) Notify(sig mutation.Signal) { s.got = append(s.got, sig) }

func newService(remote *fakeRemote) (*Service, *signals) {
	sig := &signals{}
	return NewService(remote, NewCache(), sig), sig
}

func diner() Profile {
	return Profile{ID: "r1", Name: "Bob's Diner", Description: strPtr("Burgers")}
}

func TestService_ManagedFetchesOnce(t *testing.T) {
	remote := &fakeRemote{current: diner()}
	svc, _ := newService(remote)

	for range 3 {
		p, err := svc.Managed(context.Background())
		require.NoError(t, err)
		assert.Equal(t, diner(), p)
	}
	assert.Equal(t, 1, remote.reads)

	cached, ok := svc.Cached()
	assert.True(t, ok)
	assert.Equal(t, diner(), cached)
}

func TestService_ManagedFailure(t *testing.T) {
	boom := errors.New("connection refused")
	remote := &fakeRemote{readErr: boom}
	svc, _ := newService(remote)

	_, err := svc.Managed(context.Background())
	assert.ErrorIs(t, err, boom)
	var fe *querycache.FetchError
	assert.ErrorAs(t, err, &fe)

	_, ok := svc.Cached()
	assert.False(t, ok)
}

func TestService_UpdateFailureRollsBack(t *testing.T) {
	refused := errors.New("500 internal server error")
	remote := &fakeRemote{current: diner(), writeErr: refused}
	svc, sig := newService(remote)
	_, err := svc.Managed(context.Background())
	require.NoError(t, err)

	var during Profile
	remote.during = func() { during, _ = svc.Cached() }

	res, err := svc.Update(context.Background(), Form{Name: "Bob's Grill", Description: strPtr("Burgers")})
	assert.ErrorIs(t, err, refused)
	assert.Equal(t, mutation.RolledBack, res.State)

	assert.Equal(t, "Bob's Grill", during.Name)
	assert.Equal(t, strPtr("Burgers"), during.Description)

	after, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, diner(), after)

	require.Len(t, sig.got, 1)
	assert.Equal(t, mutation.Failure, sig.got[0].Kind)
	assert.Equal(t, FailureMessage, sig.got[0].Message)
}

func TestService_ApplyNullDescription(t *testing.T) {
	remote := &fakeRemote{current: diner()}
	svc, sig := newService(remote)

	res, err := svc.Apply(context.Background(), Patch{Description: Some[*string](nil)})
	require.NoError(t, err)
	assert.Equal(t, mutation.Committed, res.State)

	after, _ := svc.Cached()
	assert.Equal(t, "Bob's Diner", after.Name)
	assert.Nil(t, after.Description)

	require.Len(t, remote.updates, 1)
	assert.False(t, remote.updates[0].Name.Set)
	require.Len(t, sig.got, 1)
	assert.Equal(t, mutation.Success, sig.got[0].Kind)
	assert.Equal(t, SuccessMessage, sig.got[0].Message)
}

func TestService_RejectsInvalidInput(t *testing.T) {
	remote := &fakeRemote{current: diner()}
	svc, sig := newService(remote)

	_, err := svc.Update(context.Background(), Form{Name: "Bo"})
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("name"))

	_, err = svc.Apply(context.Background(), Patch{Name: Some("")})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Apply(context.Background(), Patch{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	assert.Empty(t, remote.updates)
	assert.Empty(t, sig.got)
	cached, _ := svc.Cached()
	assert.Equal(t, diner(), cached)
}

func TestService_Preview(t *testing.T) {
	remote := &fakeRemote{current: diner()}
	svc, _ := newService(remote)

	before, after, err := svc.Preview(context.Background(), Patch{Name: Some("Bob's Grill")})
	require.NoError(t, err)
	assert.Equal(t, diner(), before)
	assert.Equal(t, "Bob's Grill", after.Name)
	assert.Empty(t, remote.updates)
}
