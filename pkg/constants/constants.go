package constants

// TaskStatus 任务状态
const (
	TaskStatusTodo       = "Todo"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// TaskPriority 任务优先级
const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// MemberRole 项目成员角色
const (
	MemberRoleManager   = "manager"
	MemberRoleDeveloper = "developer"
	MemberRoleQA        = "qa"
)

var (
	TaskStatuses   = []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}
	TaskPriorities = []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	MemberRoles    = []string{MemberRoleManager, MemberRoleDeveloper, MemberRoleQA}
)

// Session 相关
const (
	SessionCookieName = "session"
	SessionMaxAge     = 30 * 24 * 60 * 60
	ContextUserKey    = "session_user"
)

// 页面路由
const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/app/dashboard"
	PrefixApp     = "/app"
	PrefixAPI     = "/api"
	PrefixAPIAuth = "/api/auth"
)

// BcryptCost 密码哈希成本
const BcryptCost = 10
