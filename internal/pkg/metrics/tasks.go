package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"taskboard/internal/repository"
	"taskboard/pkg/constants"
)

const collectTimeout = 5 * time.Second

// TaskCollector 每次抓取时按状态与逾期统计任务数
type TaskCollector struct {
	tasks repository.TaskRepository
	now   func() time.Time

	byStatus *prometheus.Desc
	overdue  *prometheus.Desc
}

func NewTaskCollector(tasks repository.TaskRepository) *TaskCollector {
	return NewTaskCollectorAt(tasks, time.Now)
}

// NewTaskCollectorAt 使用指定时钟判断逾期
func NewTaskCollectorAt(tasks repository.TaskRepository, now func() time.Time) *TaskCollector {
	return &TaskCollector{
		tasks: tasks,
		now:   now,
		byStatus: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tasks", "by_status"),
			"Number of tasks in each status across all projects",
			[]string{"status"}, nil,
		),
		overdue: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tasks", "overdue"),
			"Unfinished tasks whose due date has passed",
			nil, nil,
		),
	}
}

func (c *TaskCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.byStatus
	ch <- c.overdue
}

func (c *TaskCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	counts, err := c.tasks.CountAllByStatus(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.byStatus, err)
	} else {
		byStatus := make(map[string]int64, len(constants.TaskStatuses))
		for _, status := range constants.TaskStatuses {
			byStatus[status] = 0
		}
		for _, sc := range counts {
			byStatus[sc.Status] = sc.Count
		}
		for status, n := range byStatus {
			ch <- prometheus.MustNewConstMetric(c.byStatus, prometheus.GaugeValue, float64(n), status)
		}
	}

	now := c.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	overdue, err := c.tasks.CountOverdue(ctx, today)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.overdue, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.overdue, prometheus.GaugeValue, float64(overdue))
}
