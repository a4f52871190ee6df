// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"context"
	"errors"

	"github.com/apex/log"

	"github.com/staranto/storectl/internal/mutation"
	"github.com/staranto/storectl/internal/querycache"
)

// Key addresses the managed restaurant in the query cache.
var Key = querycache.Key{"managed-restaurant"}

// ErrNothingToUpdate is returned for a patch with no present fields.
var ErrNothingToUpdate = errors.New("nothing to update")

const (
	SuccessMessage = "Profile updated successfully!"
	FailureMessage = "Failed to update the profile, please try again!"
)

// Remote is the API surface the Service depends on.
type Remote interface {
	ManagedRestaurant(ctx context.Context) (Profile, error)
	UpdateProfile(ctx context.Context, patch Patch) error
}

// NewCache returns a profile cache that never refreshes Key on its own.
func NewCache(opts ...querycache.Option) *querycache.Cache[Profile] {
	opts = append([]querycache.Option{
		querycache.WithPolicy(Key, querycache.NeverRefresh()),
	}, opts...)
	return querycache.New[Profile](opts...)
}

// Service reads and edits the managed restaurant profile.
type Service struct {
	remote Remote
	cache  *querycache.Cache[Profile]
	coord  *mutation.Coordinator[Profile, Patch]
}

// NewService binds remote to cache. Mutation outcomes are sent to n.
func NewService(remote Remote, cache *querycache.Cache[Profile], n mutation.Notifier) *Service {
	return &Service{
		remote: remote,
		cache:  cache,
		coord: mutation.New[Profile, Patch](cache, Merge,
			mutation.WithNotifier(n),
			mutation.WithMessages(SuccessMessage, FailureMessage),
		),
	}
}

// Managed returns the cached profile, fetching it on first use.
func (s *Service) Managed(ctx context.Context) (Profile, error) {
	return s.cache.FetchOrGet(ctx, Key, s.remote.ManagedRestaurant)
}

// Cached returns the profile currently held by the cache without fetching.
func (s *Service) Cached() (Profile, bool) {
	ent, ok := s.cache.Get(Key)
	return ent.Value, ok
}

// Update validates f and submits it.
func (s *Service) Update(ctx context.Context, f Form) (mutation.Result[Profile], error) {
	if err := Validate(f); err != nil {
		return mutation.Result[Profile]{}, err
	}
	return s.mutate(ctx, f.Patch())
}

// Apply submits a partial patch. The profile is fetched first so the merged
// result can be validated as a whole.
func (s *Service) Apply(ctx context.Context, patch Patch) (mutation.Result[Profile], error) {
	_, after, err := s.Preview(ctx, patch)
	if err != nil {
		return mutation.Result[Profile]{}, err
	}
	if err := Validate(FormFrom(after)); err != nil {
		return mutation.Result[Profile]{}, err
	}
	return s.mutate(ctx, patch)
}

// Preview returns the current profile and what it would become under patch.
func (s *Service) Preview(ctx context.Context, patch Patch) (Profile, Profile, error) {
	cur, err := s.Managed(ctx)
	if err != nil {
		return Profile{}, Profile{}, err
	}
	return cur, Merge(cur, patch), nil
}

func (s *Service) mutate(ctx context.Context, patch Patch) (mutation.Result[Profile], error) {
	if patch.Empty() {
		return mutation.Result[Profile]{}, ErrNothingToUpdate
	}
	log.Debugf("updating profile: name=%t description=%t", patch.Name.Set, patch.Description.Set)
	return s.coord.Mutate(ctx, Key, patch, s.remote.UpdateProfile)
}
