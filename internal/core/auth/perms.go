package auth

// 能力标签对服务层是不透明字符串，只在路由中间件校验
const (
	PermManagerList   = "manager:list"
	PermManagerAdd    = "manager:add"
	PermManagerEdit   = "manager:edit"
	PermManagerDelete = "manager:delete"
)

var rolePerms = map[string]map[string]struct{}{
	"admin": {
		PermManagerList:   {},
		PermManagerAdd:    {},
		PermManagerEdit:   {},
		PermManagerDelete: {},
	},
	"viewer": {
		PermManagerList: {},
	},
}

func RoleHas(role, perm string) bool {
	ps, ok := rolePerms[role]
	if !ok {
		return false
	}
	_, ok = ps[perm]
	return ok
}
