package item

import "fmt"

func cacheKeyItem(id string) string {
	return fmt.Sprintf("nearby:item:%s", id)
}
