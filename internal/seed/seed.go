// Package seed loads the demo accounts, labels and project into an empty or partially seeded database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"taskboard/internal/model"
	"taskboard/internal/pkg/crypto"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/validate"
	"taskboard/internal/repository"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Password string           `yaml:"password"`
	Users    []string         `yaml:"users"`
	Labels   []LabelFixture   `yaml:"labels"`
	Projects []ProjectFixture `yaml:"projects"`
}

type LabelFixture struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type MemberFixture struct {
	User string `yaml:"user"`
	Role string `yaml:"role"`
}

type TaskFixture struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	Assignee    string   `yaml:"assignee"`
	DueDate     string   `yaml:"due_date"`
	Labels      []string `yaml:"labels"`
}

type ProjectFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	StartDate   string          `yaml:"start_date"`
	EndDate     string          `yaml:"end_date"`
	Owner       string          `yaml:"owner"`
	Members     []MemberFixture `yaml:"members"`
	Tasks       []TaskFixture   `yaml:"tasks"`
}

// Result 本次新建的记录数, 已存在的记录不计入
type Result struct {
	Users    int
	Labels   int
	Projects int
	Tasks    int
}

// DefaultFixtures 内置演示数据
func DefaultFixtures() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Run 按用户名, 标签名, (owner, 项目名) 判断是否已存在, 重复执行不会产生重复数据
func Run(ctx context.Context, store *repository.Store, f *Fixtures) (*Result, error) {
	result := &Result{}

	hash, err := crypto.HashPassword(f.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make(map[string]*model.User, len(f.Users))
	for _, username := range f.Users {
		user, created, err := ensureUser(ctx, store, username, hash)
		if err != nil {
			return nil, err
		}
		users[username] = user
		result.Users += lo.Ternary(created, 1, 0)
	}

	labels := make(map[string]*model.Label, len(f.Labels))
	for _, lf := range f.Labels {
		label, created, err := ensureLabel(ctx, store, lf)
		if err != nil {
			return nil, err
		}
		labels[lf.Name] = label
		result.Labels += lo.Ternary(created, 1, 0)
	}

	for _, pf := range f.Projects {
		tasks, err := ensureProject(ctx, store, pf, users, labels)
		if err != nil {
			return nil, err
		}
		if tasks >= 0 {
			result.Projects++
			result.Tasks += tasks
		}
	}

	logger.Info("seed completed",
		zap.Int("users", result.Users),
		zap.Int("labels", result.Labels),
		zap.Int("projects", result.Projects),
		zap.Int("tasks", result.Tasks))
	return result, nil
}

func ensureUser(ctx context.Context, store *repository.Store, username, hash string) (*model.User, bool, error) {
	user, err := store.Users.FindByUsername(ctx, username)
	if err != nil || user != nil {
		return user, false, err
	}
	user = &model.User{Username: username, Password: hash}
	if err := store.Users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func ensureLabel(ctx context.Context, store *repository.Store, lf LabelFixture) (*model.Label, bool, error) {
	label, err := store.Labels.FindByName(ctx, lf.Name)
	if err != nil || label != nil {
		return label, false, err
	}
	label = &model.Label{Name: lf.Name, Color: lf.Color}
	if err := store.Labels.Create(ctx, label); err != nil {
		return nil, false, err
	}
	return label, true, nil
}

// ensureProject 返回新建的任务数; 项目已存在时返回 -1
func ensureProject(ctx context.Context, store *repository.Store, pf ProjectFixture,
	users map[string]*model.User, labels map[string]*model.Label) (int, error) {
	owner, ok := users[pf.Owner]
	if !ok {
		return 0, fmt.Errorf("project %q: unknown owner %q", pf.Name, pf.Owner)
	}
	if err := checkEnums(pf); err != nil {
		return 0, err
	}

	existing, err := store.Projects.FindByOwnerAndName(ctx, owner.ID, pf.Name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return -1, nil
	}

	project := &model.Project{
		Name:    pf.Name,
		OwnerID: owner.ID,
	}
	if pf.Description != "" {
		project.Description = lo.ToPtr(pf.Description)
	}
	if project.StartDate, err = parseDate(pf.StartDate); err != nil {
		return 0, err
	}
	if project.EndDate, err = parseDate(pf.EndDate); err != nil {
		return 0, err
	}

	err = store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Projects.Create(ctx, project); err != nil {
			return err
		}
		for _, mf := range pf.Members {
			user, ok := users[mf.User]
			if !ok {
				return fmt.Errorf("project %q: unknown member %q", pf.Name, mf.User)
			}
			member := &model.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: mf.Role}
			if err := tx.Members.Create(ctx, member); err != nil {
				return err
			}
		}
		for _, tf := range pf.Tasks {
			if err := createTask(ctx, tx, project.ID, tf, users, labels); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(pf.Tasks), nil
}

// checkEnums 固定数据不经过 service 校验, 写入前检查角色、状态与优先级; 状态和优先级可留空取默认值
func checkEnums(pf ProjectFixture) error {
	for _, mf := range pf.Members {
		if !validate.IsMemberRole(mf.Role) {
			return fmt.Errorf("project %q: invalid role %q for member %q", pf.Name, mf.Role, mf.User)
		}
	}
	for _, tf := range pf.Tasks {
		if tf.Status != "" && !validate.IsTaskStatus(tf.Status) {
			return fmt.Errorf("task %q: invalid status %q", tf.Title, tf.Status)
		}
		if tf.Priority != "" && !validate.IsTaskPriority(tf.Priority) {
			return fmt.Errorf("task %q: invalid priority %q", tf.Title, tf.Priority)
		}
	}
	return nil
}

func createTask(ctx context.Context, tx *repository.Store, projectID string, tf TaskFixture,
	users map[string]*model.User, labels map[string]*model.Label) error {
	task := &model.Task{
		ProjectID: projectID,
		Title:     tf.Title,
		Status:    tf.Status,
		Priority:  tf.Priority,
	}
	if tf.Description != "" {
		task.Description = lo.ToPtr(tf.Description)
	}
	if tf.Assignee != "" {
		assignee, ok := users[tf.Assignee]
		if !ok {
			return fmt.Errorf("task %q: unknown assignee %q", tf.Title, tf.Assignee)
		}
		task.AssigneeID = lo.ToPtr(assignee.ID)
	}
	var err error
	if task.DueDate, err = parseDate(tf.DueDate); err != nil {
		return err
	}
	if err := tx.Tasks.Create(ctx, task); err != nil {
		return err
	}

	labelIDs := make([]string, 0, len(tf.Labels))
	for _, name := range tf.Labels {
		label, ok := labels[name]
		if !ok {
			return fmt.Errorf("task %q: unknown label %q", tf.Title, name)
		}
		labelIDs = append(labelIDs, label.ID)
	}
	return tx.TaskLabels.Attach(ctx, task.ID, labelIDs...)
}

func parseDate(value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture date %q: %w", value, err)
	}
	d := datatypes.Date(t)
	return &d, nil
}
