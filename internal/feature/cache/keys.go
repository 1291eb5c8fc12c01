package cache

import (
	"strconv"

	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// Cache keys follow a resource:operation:descriptor hierarchy so related
// entries can be addressed as a group.
const (
	listPrefix   = "users:list:"
	detailPrefix = "users:detail:"
	analyticsKey = "users:analytics"
)

func listKey(q user.Query) string {
	return listPrefix + q.Key()
}

func detailKey(id int) string {
	return detailPrefix + strconv.Itoa(id)
}
