package queue

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"surf-calendar/internal/domain/model"
	"surf-calendar/pkg/sqs"
)

// QueueHealthGateway reports the state of the run request consumers. Workers register
// under their queue name once they are built.
type QueueHealthGateway struct {
	workers map[string]WorkerHealthChecker
	mutex   sync.RWMutex
}

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{workers: make(map[string]WorkerHealthChecker)}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker WorkerHealthChecker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

// Health is UNKNOWN without workers, which is the case when runs are not queued,
// and UP only when every registered worker is polling.
func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "No run request worker registered", "workers_total": "0"},
		}
	}

	names := make([]string, 0, len(gateway.workers))
	for name := range gateway.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := map[string]string{"queues": strings.Join(names, ",")}
	var down int
	for _, name := range names {
		health := gateway.workers[name].HealthCheck()
		workerStatus := model.StatusUp
		if health.Status != sqs.StatusUp {
			workerStatus = model.StatusDown
			status = model.StatusDown
			down++
		}
		details[name+"_status"] = string(workerStatus)
		for key, value := range health.Details {
			details[name+"_"+key] = value
		}
	}

	details["workers_total"] = strconv.Itoa(len(names))
	details["workers_up"] = strconv.Itoa(len(names) - down)
	details["workers_down"] = strconv.Itoa(down)
	return model.ComponentHealthStatus{Status: status, Details: details}
}
