package admins

import (
	"context"

	"github.com/angelmondragon/storefront-admin/pkg/querycache"
)

// QueryKey identifies the admin listing in the query cache.
const QueryKey querycache.Key = "admins:list"

// Reader is the remote read behind the admin listing.
type Reader interface {
	ListWithUsernames(ctx context.Context) ([]AdminRecord, error)
}

// Lister serves the admin listing through the query cache.
type Lister struct {
	query *querycache.Query[[]AdminRecord]
}

func NewLister(cache *querycache.Cache, reader Reader) *Lister {
	return &Lister{query: querycache.NewQuery(cache, QueryKey, reader.ListWithUsernames)}
}

// ListAdmins never touches the reader when callerIsAdmin is false. A failed read carries Err
// and no admins.
func (l *Lister) ListAdmins(ctx context.Context, callerIsAdmin bool) AdminList {
	res := l.query.Fetch(ctx, callerIsAdmin)
	return AdminList{
		Loading: res.Loading(),
		Err:     res.Err,
		Admins:  res.Data,
	}
}

// Subscribe forwards every state transition of the admin listing to fn.
func (l *Lister) Subscribe(fn func(AdminList)) func() {
	return l.query.Subscribe(func(res querycache.Result[[]AdminRecord]) {
		fn(AdminList{Loading: res.Loading(), Err: res.Err, Admins: res.Data})
	})
}

func (l *Lister) Invalidate() {
	l.query.Invalidate()
}
