package users

import (
	"context"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/angelmondragon/storefront-admin/pkg/pagination"
)

// Directory is the administrative user listing: every account, credentials omitted.
type Directory interface {
	ListUsers(ctx context.Context, params pagination.Params) (pagination.Page[UserDTO], error)
}

type pageLister interface {
	ListPage(ctx context.Context, params pagination.Params) (pagination.Page[models.User], error)
}

type directory struct {
	repo pageLister
}

func NewDirectory(repo pageLister) Directory {
	return &directory{repo: repo}
}

func (d *directory) ListUsers(ctx context.Context, params pagination.Params) (pagination.Page[UserDTO], error) {
	page, err := d.repo.ListPage(ctx, params)
	if err != nil {
		return pagination.Page[UserDTO]{}, err
	}
	items := make([]UserDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *FromModel(&page.Items[i]))
	}
	return pagination.Page[UserDTO]{Items: items, NextCursor: page.NextCursor}, nil
}
