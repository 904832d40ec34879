package services

import (
	"context"

	"github.com/SscSPs/money_billing/internal/core/domain"
)

// EntityLookupFunc loads one entity of a single kind by ID.
type EntityLookupFunc func(ctx context.Context, id string) (domain.Entity, error)

// ReferenceResolverSvc dispatches polymorphic references to per-kind lookups.
type ReferenceResolverSvc interface {
	Register(kind domain.EntityKind, lookup EntityLookupFunc)
	Resolve(ctx context.Context, ref domain.Ref) (domain.Entity, error)
}

// StatusEventPublisher delivers status change events to downstream consumers.
type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error
}
