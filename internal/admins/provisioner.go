package admins

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-admin/internal/users"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/metrics"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
	"github.com/google/uuid"
)

var (
	errUserNotFound  = errors.New("no user with that email")
	errCursorStalled = errors.New("user directory cursor did not advance")
)

// Inserter writes the admin association.
type Inserter interface {
	Insert(ctx context.Context, userID uuid.UUID) error
}

// OutcomeObserver counts provisioning outcomes; *metrics.ProvisioningMetrics satisfies it.
type OutcomeObserver interface {
	Observe(outcome string)
}

type ProvisionerParams struct {
	Directory users.Directory
	Admins    Inserter
	Logger    *logger.Logger
	Metrics   OutcomeObserver
	// Invalidate runs after a successful insert, typically Lister.Invalidate.
	Invalidate func()
	PageSize   int
}

// Provisioner grants admin rights to an existing user identified by email.
type Provisioner struct {
	directory  users.Directory
	admins     Inserter
	logg       *logger.Logger
	metrics    OutcomeObserver
	invalidate func()
	pageSize   int
}

func NewProvisioner(params ProvisionerParams) (*Provisioner, error) {
	if params.Directory == nil {
		return nil, errors.New("user directory required")
	}
	if params.Admins == nil {
		return nil, errors.New("admin inserter required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	return &Provisioner{
		directory:  params.Directory,
		admins:     params.Admins,
		logg:       params.Logger,
		metrics:    params.Metrics,
		invalidate: params.Invalidate,
		pageSize:   pagination.NormalizeLimit(params.PageSize),
	}, nil
}

// Provision looks the email up in the user directory (exact, case-sensitive) and inserts an
// admin association for the match. Lookup misses and remote failures are logged and reported
// as false; true means the insert completed.
func (p *Provisioner) Provision(ctx context.Context, email string) bool {
	ctx = p.logg.WithField(ctx, "email", email)

	userID, err := p.lookup(ctx, email)
	switch {
	case errors.Is(err, errUserNotFound):
		p.logg.Warn(ctx, "admin.provision.user_not_found")
		p.observe(metrics.ProvisionOutcomeNotFound)
		return false
	case err != nil:
		p.logg.Error(ctx, "admin.provision.lookup_failed", err)
		p.observe(metrics.ProvisionOutcomeLookupFailed)
		return false
	}

	ctx = p.logg.WithField(ctx, "target_user_id", userID.String())
	if err := p.admins.Insert(ctx, userID); err != nil {
		p.logg.Error(ctx, "admin.provision.insert_failed", err)
		p.observe(metrics.ProvisionOutcomeInsertFailed)
		return false
	}

	if p.invalidate != nil {
		p.invalidate()
	}
	p.logg.Info(ctx, "admin.provision.success")
	p.observe(metrics.ProvisionOutcomeSuccess)
	return true
}

// lookup walks every page of the directory; the listing is paginated so a single page could miss the user.
func (p *Provisioner) lookup(ctx context.Context, email string) (uuid.UUID, error) {
	params := pagination.Params{Limit: p.pageSize}
	seen := map[string]struct{}{}
	for {
		page, err := p.directory.ListUsers(ctx, params)
		if err != nil {
			return uuid.Nil, err
		}
		for _, user := range page.Items {
			if user.Email == email {
				return user.ID, nil
			}
		}
		if !page.HasMore() {
			return uuid.Nil, errUserNotFound
		}
		if _, ok := seen[page.NextCursor]; ok {
			return uuid.Nil, errCursorStalled
		}
		seen[page.NextCursor] = struct{}{}
		params.Cursor = page.NextCursor
	}
}

func (p *Provisioner) observe(outcome string) {
	if p.metrics != nil {
		p.metrics.Observe(outcome)
	}
}
