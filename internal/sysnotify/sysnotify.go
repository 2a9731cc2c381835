package sysnotify

import (
	"errors"
	"os"
	"os/signal"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/zijiren233/gencontainer/pqueue"
	"github.com/zijiren233/gencontainer/rwmap"
)

var sysNotify SysNotify

func Init() {
	sysNotify.Init()
}

func RegisterSysNotifyTask(priority int, task *Task) error {
	return sysNotify.RegisterSysNotifyTask(priority, task)
}

func WaitCbk() {
	sysNotify.WaitCbk()
}

// Run executes the tasks registered for t without waiting for a signal.
func Run(t NotifyType) {
	sysNotify.Run(t)
}

type SysNotify struct {
	c         chan os.Signal
	taskGroup rwmap.RWMap[NotifyType, *taskQueue]
	once      sync.Once
}

type NotifyType int

const (
	NotifyTypeEXIT NotifyType = iota + 1
	NotifyTypeRELOAD
)

type taskQueue struct {
	lock  sync.Mutex
	queue *pqueue.PQueue[*Task]
	// reload tasks run on every signal, exit tasks only once
	keep bool
}

type Task struct {
	Task       func() error
	Name       string
	NotifyType NotifyType
	priority   int
}

func NewSysNotifyTask(name string, notifyType NotifyType, task func() error) *Task {
	return &Task{
		Name:       name,
		NotifyType: notifyType,
		Task:       task,
	}
}

// Lower priorities run first.
func (sn *SysNotify) RegisterSysNotifyTask(priority int, task *Task) error {
	if task == nil || task.Task == nil {
		return errors.New("task is nil")
	}
	if task.NotifyType == 0 {
		return errors.New("task notify type is 0")
	}
	tq, _ := sn.taskGroup.LoadOrStore(task.NotifyType, &taskQueue{
		queue: pqueue.NewMinPriorityQueue[*Task](),
		keep:  task.NotifyType == NotifyTypeRELOAD,
	})
	tq.lock.Lock()
	defer tq.lock.Unlock()
	task.priority = priority
	tq.queue.Push(priority, task)
	return nil
}

// Run executes the tasks registered for t as if the signal had arrived.
func (sn *SysNotify) Run(t NotifyType) {
	tq, ok := sn.taskGroup.Load(t)
	if !ok {
		return
	}
	runTask(tq)
}

func runTask(tq *taskQueue) {
	tq.lock.Lock()
	defer tq.lock.Unlock()
	var done []*Task
	for tq.queue.Len() > 0 {
		_, task := tq.queue.Pop()
		func() {
			defer func() {
				if err := recover(); err != nil {
					log.Errorf("task: %s panic has returned: %v", task.Name, err)
				}
			}()
			log.Infof("task: %s running", task.Name)
			if err := task.Task(); err != nil {
				log.Errorf("task: %s an error occurred: %v", task.Name, err)
			}
			log.Infof("task: %s done", task.Name)
		}()
		done = append(done, task)
	}
	if tq.keep {
		for _, task := range done {
			tq.queue.Push(task.priority, task)
		}
	}
}

func (sn *SysNotify) Init() {
	sigs := make([]os.Signal, 0, len(signalTypes))
	for s := range signalTypes {
		sigs = append(sigs, s)
	}
	sn.c = make(chan os.Signal, 1)
	signal.Notify(sn.c, sigs...)
}

// parseSysNotifyType returns 0 for signals nobody registered.
func parseSysNotifyType(s os.Signal) NotifyType {
	return signalTypes[s]
}

func (sn *SysNotify) waitCbk() {
	log.Info("wait sys notify")
	for s := range sn.c {
		log.Infof("receive sys notify: %v", s)
		switch parseSysNotifyType(s) {
		case NotifyTypeEXIT:
			log.Info("task: NotifyTypeEXIT running...")
			sn.Run(NotifyTypeEXIT)
			log.Info("task: all done")
			return
		case NotifyTypeRELOAD:
			log.Info("task: NotifyTypeRELOAD running...")
			sn.Run(NotifyTypeRELOAD)
		}
	}
}

func (sn *SysNotify) WaitCbk() {
	sn.once.Do(sn.waitCbk)
}
