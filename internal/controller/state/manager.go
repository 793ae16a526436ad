package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/service"
)

// Чаты без сессии и без начатого ввода удаляются, когда таблица
// разрастается до chatPruneThreshold
const (
	chatIdleTTL        = 30 * time.Minute
	chatPruneThreshold = 1024
)

// Manager управляет данными чатов. Каждому чату принадлежит своя
// сессия портала; глобальной сессии нет.
type Manager struct {
	mu           sync.Mutex
	chats        map[int64]*ChatData // telegramID -> ChatData
	newWorkspace func() *service.Workspace

	now     func() time.Time
	pruneAt int
}

// NewManager создаёт менеджер; newWorkspace вызывается для каждого нового чата
func NewManager(newWorkspace func() *service.Workspace) *Manager {
	return &Manager{
		chats:        make(map[int64]*ChatData),
		newWorkspace: newWorkspace,
		now:          time.Now,
		pruneAt:      chatPruneThreshold,
	}
}

// Len возвращает число чатов в памяти
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.chats)
}

// Workspace возвращает сессию портала чата, создавая её при первом обращении
func (sm *Manager) Workspace(telegramID int64) *service.Workspace {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.get(telegramID).Workspace
}

// Get возвращает копию данных чата
func (sm *Manager) Get(telegramID int64) ChatData {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return *sm.get(telegramID)
}

// Update изменяет данные чата под блокировкой
func (sm *Manager) Update(telegramID int64, fn func(*ChatData)) ChatData {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	d := sm.get(telegramID)
	fn(d)
	return *d
}

// GetState получает текущее состояние диалога
func (sm *Manager) GetState(telegramID int64) DialogState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if d, ok := sm.chats[telegramID]; ok {
		return d.Dialog
	}
	return StateNone
}

// SetState устанавливает состояние диалога
func (sm *Manager) SetState(telegramID int64, state DialogState) {
	sm.Update(telegramID, func(d *ChatData) { d.Dialog = state })
}

// ClearState прерывает диалог и сбрасывает данные шага; сессия остаётся
func (sm *Manager) ClearState(telegramID int64) {
	sm.Update(telegramID, func(d *ChatData) {
		d.Dialog = StateNone
		d.Email = ""
		d.ResetStep()
	})
}

func (sm *Manager) get(telegramID int64) *ChatData {
	now := sm.now()
	d, ok := sm.chats[telegramID]
	if !ok {
		if len(sm.chats) >= sm.pruneAt {
			sm.prune(now)
		}
		d = &ChatData{
			Workspace: sm.newWorkspace(),
			Filter:    model.PeriodAll,
		}
		sm.chats[telegramID] = d
	}
	d.lastSeen = now
	return d
}

// prune удаляет простаивающие чаты без сессии
func (sm *Manager) prune(now time.Time) {
	for id, d := range sm.chats {
		if d.idle() && now.Sub(d.lastSeen) > chatIdleTTL {
			delete(sm.chats, id)
		}
	}
}
