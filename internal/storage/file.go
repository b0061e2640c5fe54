package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/studytracker/internal"
)

type FileStorage struct {
	studyLogs    map[string]*internal.StudyLog              // id -> StudyLog
	userLogIndex map[string][]*internal.StudyLog            // userID -> logs sorted by CreatedAt descending
	milestones   map[string]map[string]*internal.MilestoneRecord // userID -> type -> record
	settings     map[string]*internal.ReminderSettings      // userID -> settings
	mu           sync.RWMutex

	logsFile       string
	milestonesFile string
	settingsFile   string

	saveLogsChan       chan struct{}
	saveMilestonesChan chan struct{}
	saveSettingsChan   chan struct{}
	shutdownChan       chan struct{}
	saveDelay          time.Duration
	logger             internal.Logger
}

func NewFileStorage(logsFile, milestonesFile, settingsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		studyLogs:          make(map[string]*internal.StudyLog),
		userLogIndex:       make(map[string][]*internal.StudyLog),
		milestones:         make(map[string]map[string]*internal.MilestoneRecord),
		settings:           make(map[string]*internal.ReminderSettings),
		logsFile:           logsFile,
		milestonesFile:     milestonesFile,
		settingsFile:       settingsFile,
		saveLogsChan:       make(chan struct{}, 1),
		saveMilestonesChan: make(chan struct{}, 1),
		saveSettingsChan:   make(chan struct{}, 1),
		shutdownChan:       make(chan struct{}),
		saveDelay:          500 * time.Millisecond,
		logger:             logger,
	}

	if err := s.loadStudyLogs(); err != nil {
		logger.Errorf("storage: failed to load study logs: %v", err)
		return nil, err
	}
	if err := s.loadMilestones(); err != nil {
		logger.Errorf("storage: failed to load milestones: %v", err)
		return nil, err
	}
	if err := s.loadSettings(); err != nil {
		logger.Errorf("storage: failed to load user settings: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveLogsChan, s.saveStudyLogs, "study logs")
	go s.saveWorker(s.saveMilestonesChan, s.saveMilestones, "milestones")
	go s.saveWorker(s.saveSettingsChan, s.saveSettings, "user settings")

	return s, nil
}

func decodeJSONFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var items []T
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

func (s *FileStorage) loadStudyLogs() error {
	logs, err := decodeJSONFile[*internal.StudyLog](s.logsFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range logs {
		s.studyLogs[l.ID] = l
		s.userLogIndex[l.UserID] = append(s.userLogIndex[l.UserID], l)
	}
	for userID := range s.userLogIndex {
		sort.Slice(s.userLogIndex[userID], func(i, j int) bool {
			return s.userLogIndex[userID][i].CreatedAt.After(s.userLogIndex[userID][j].CreatedAt)
		})
	}
	return nil
}

func (s *FileStorage) loadMilestones() error {
	records, err := decodeJSONFile[*internal.MilestoneRecord](s.milestonesFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range records {
		if s.milestones[m.UserID] == nil {
			s.milestones[m.UserID] = make(map[string]*internal.MilestoneRecord)
		}
		s.milestones[m.UserID][m.MilestoneType] = m
	}
	return nil
}

func (s *FileStorage) loadSettings() error {
	rows, err := decodeJSONFile[*internal.ReminderSettings](s.settingsFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range rows {
		s.settings[st.UserID] = st
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveStudyLogs() error {
	s.mu.RLock()
	logs := make([]*internal.StudyLog, 0, len(s.studyLogs))
	for _, l := range s.studyLogs {
		logs = append(logs, l)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.logsFile, logs)
}

func (s *FileStorage) saveMilestones() error {
	s.mu.RLock()
	records := make([]*internal.MilestoneRecord, 0)
	for _, typeMap := range s.milestones {
		for _, m := range typeMap {
			records = append(records, m)
		}
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.milestonesFile, records)
}

func (s *FileStorage) saveSettings() error {
	s.mu.RLock()
	rows := make([]*internal.ReminderSettings, 0, len(s.settings))
	for _, st := range s.settings {
		rows = append(rows, st)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.settingsFile, rows)
}

// saveWorker batches save signals to avoid a disk write per mutation.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func requestSave(signal chan struct{}) {
	select {
	case signal <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveStudyLogs(); err != nil {
		return err
	}
	if err := s.saveMilestones(); err != nil {
		return err
	}
	return s.saveSettings()
}

// --- StudyLogRepository ---

func (s *FileStorage) SaveStudyLog(ctx context.Context, log *internal.StudyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.studyLogs[log.ID] = log
	logs := s.userLogIndex[log.UserID]
	inserted := false
	for i, existing := range logs {
		if existing.CreatedAt.Before(log.CreatedAt) {
			logs = append(logs[:i], append([]*internal.StudyLog{log}, logs[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		logs = append(logs, log)
	}
	s.userLogIndex[log.UserID] = logs

	requestSave(s.saveLogsChan)
	return nil
}

func (s *FileStorage) ListStudyLogs(ctx context.Context, userID string) ([]internal.StudyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logsPtr, ok := s.userLogIndex[userID]
	if !ok {
		return []internal.StudyLog{}, nil
	}
	logs := make([]internal.StudyLog, len(logsPtr))
	for i, l := range logsPtr {
		logs[i] = *l
	}
	return logs, nil
}

func (s *FileStorage) DeleteStudyLog(ctx context.Context, id, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.studyLogs[id]
	if !ok || log.UserID != userID {
		// Absent and foreign-owned are indistinguishable to the caller.
		return 0, nil
	}

	delete(s.studyLogs, id)
	logs := s.userLogIndex[userID]
	for i, l := range logs {
		if l.ID == id {
			s.userLogIndex[userID] = append(logs[:i], logs[i+1:]...)
			break
		}
	}

	requestSave(s.saveLogsChan)
	return 1, nil
}

// --- MilestoneRepository ---

func (s *FileStorage) ListMilestones(ctx context.Context, userID string) ([]internal.MilestoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typeMap := s.milestones[userID]
	records := make([]internal.MilestoneRecord, 0, len(typeMap))
	for _, def := range s.milestoneTypesInOrder(typeMap) {
		records = append(records, *typeMap[def])
	}
	return records, nil
}

// milestoneTypesInOrder returns the map keys sorted for deterministic reads.
func (s *FileStorage) milestoneTypesInOrder(typeMap map[string]*internal.MilestoneRecord) []string {
	types := make([]string, 0, len(typeMap))
	for t := range typeMap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (s *FileStorage) SaveMilestones(ctx context.Context, records []internal.MilestoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		m := records[i]
		if s.milestones[m.UserID] == nil {
			s.milestones[m.UserID] = make(map[string]*internal.MilestoneRecord)
		}
		if _, exists := s.milestones[m.UserID][m.MilestoneType]; exists {
			continue // achievement is append-once
		}
		s.milestones[m.UserID][m.MilestoneType] = &m
	}

	requestSave(s.saveMilestonesChan)
	return nil
}

func (s *FileStorage) DeleteMilestones(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.milestones, userID)
	requestSave(s.saveMilestonesChan)
	return nil
}

// --- SettingsRepository ---

func (s *FileStorage) GetSettings(ctx context.Context, userID string) (*internal.ReminderSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *st
	return &copied, nil
}

func (s *FileStorage) UpsertSettings(ctx context.Context, settings *internal.ReminderSettings) (*internal.ReminderSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings[settings.UserID] = &copied
	requestSave(s.saveSettingsChan)
	result := copied
	return &result, nil
}

func (s *FileStorage) ListEnabledSettings(ctx context.Context) ([]internal.ReminderSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]internal.ReminderSettings, 0)
	for _, st := range s.settings {
		if st.Enabled {
			rows = append(rows, *st)
		}
	}
	return rows, nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
