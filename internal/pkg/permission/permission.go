package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Checker answers capability questions at the API boundary:
// may this role perform this action on this module? Aggregation logic never
// consults it.
type Checker interface {
	Allow(role, module, action string) (bool, error)
}

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies mirror the studio's role set: the director and the generic
// admin role hold every payroll capability, managers can view and edit, all
// other roles may only view (their own slip, enforced by the handler).
var defaultPolicies = [][]string{
	{"admin", "payroll", "view"},
	{"admin", "payroll", "edit"},
	{"admin", "payroll", "sync"},
	{"admin", "payroll", "finalize"},
	{"manager", "payroll", "view"},
	{"manager", "payroll", "edit"},
	{"staff", "payroll", "view"},
}

// roleGroups map the studio's Vietnamese role titles onto the policy roles.
var roleGroups = [][]string{
	{"Giám đốc", "admin"},
	{"Quản lý", "manager"},
	{"Nhiếp ảnh gia", "staff"},
	{"Makeup Artist", "staff"},
	{"Sale & CSKH", "staff"},
	{"Hậu kỳ / Editor", "staff"},
	{"Trợ lý", "staff"},
}

type casbinChecker struct {
	enforcer *casbin.Enforcer
}

// NewChecker builds an in-memory casbin enforcer with the default studio
// policy set.
func NewChecker() (Checker, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy: %w", err)
		}
	}
	for _, g := range roleGroups {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("failed to add role group: %w", err)
		}
	}

	return &casbinChecker{enforcer: enforcer}, nil
}

func (c *casbinChecker) Allow(role, module, action string) (bool, error) {
	return c.enforcer.Enforce(role, module, action)
}
