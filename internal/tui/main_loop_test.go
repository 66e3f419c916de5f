// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── стабы клиентских сервисов ──

type stubRecordService struct {
	zones       []models.Zone
	records     []models.Record
	deletedRec  string
	deletedZone string
	createdZone string
	err         error
}

func (s *stubRecordService) SaveRecord(_ context.Context, record models.Record) (models.Record, error) {
	return record, s.err
}

func (s *stubRecordService) GetRecord(_ context.Context, _, _ string) (models.Record, error) {
	return models.Record{}, s.err
}

func (s *stubRecordService) ListRecords(_ context.Context, _ string) ([]models.Record, error) {
	return s.records, s.err
}

func (s *stubRecordService) DeleteRecord(_ context.Context, _, recordID string) error {
	s.deletedRec = recordID
	return s.err
}

func (s *stubRecordService) CreateZone(_ context.Context, name string) (models.Zone, error) {
	s.createdZone = name
	return models.Zone{Name: name}, s.err
}

func (s *stubRecordService) ListZones(_ context.Context) ([]models.Zone, error) {
	return s.zones, s.err
}

func (s *stubRecordService) DeleteZone(_ context.Context, name string) error {
	s.deletedZone = name
	return s.err
}

type stubSyncService struct {
	syncedZone string
	status     service.SyncStatus
	err        error
}

func (s *stubSyncService) FetchChanges(_ context.Context, _ string) error { return s.err }
func (s *stubSyncService) SendChanges(_ context.Context, _ string) error  { return s.err }

func (s *stubSyncService) Sync(_ context.Context, zone string) error {
	s.syncedZone = zone
	return s.err
}

func (s *stubSyncService) Zones(_ context.Context) ([]string, error) { return nil, s.err }

func (s *stubSyncService) Status(_ context.Context) service.SyncStatus { return s.status }

func newTestLoop(records *stubRecordService, sync *stubSyncService) mainLoopModel {
	services := &service.ClientServices{
		RecordService: records,
		SyncService:   sync,
	}
	return newMainLoopModel(context.Background(), services, models.Session{Login: "alice", UserID: 7})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// applyMsg прогоняет сообщение через Update и возвращает новую модель
func applyMsg(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(mainLoopModel)
	require.True(t, ok)
	return model, cmd
}

// ── список зон ──

func TestMainLoop_ZonesLoaded(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})

	zones := []models.Zone{{Name: "default"}, {Name: "notes"}}
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: zones})

	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "default")
	assert.Contains(t, view, "notes")
	assert.Contains(t, view, "ЗОНЫ")
}

func TestMainLoop_ZonesLoadError(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})

	m, _ = applyMsg(t, m, zonesLoadedMsg{err: errors.New("dial tcp 127.0.0.1:8080: connection refused")})

	// сетевые ошибки показываются человеко-понятным текстом
	assert.Contains(t, m.View(), "Отсутствует сеть или Сервер недоступен")
}

func TestMainLoop_EnterOpensZone(t *testing.T) {
	records := &stubRecordService{
		records: []models.Record{{RecordID: "rec-1", Zone: "notes", Type: "note"}},
	}
	m := newTestLoop(records, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: "notes"}}})

	m, cmd := applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = applyMsg(t, m, cmd())

	assert.Equal(t, stageRecords, m.stage)
	assert.Equal(t, "notes", m.currentZone)
	view := m.View()
	assert.Contains(t, view, "rec-1")
	assert.Contains(t, view, "ЗОНА: notes")
}

func TestMainLoop_DefaultZoneNotDeletable(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: models.DefaultZone}}})

	m, _ = applyMsg(t, m, keyRune('d'))

	assert.Equal(t, confirmNone, m.confirm)
	assert.Contains(t, m.View(), "Зону по умолчанию удалить нельзя")
}

func TestMainLoop_DeleteZoneAsksConfirmation(t *testing.T) {
	records := &stubRecordService{}
	m := newTestLoop(records, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: "notes"}}})

	m, _ = applyMsg(t, m, keyRune('d'))
	assert.Equal(t, confirmZone, m.confirm)
	assert.Contains(t, m.View(), "Удалить \"notes\"?")

	// отказ закрывает окно и ничего не удаляет
	m, _ = applyMsg(t, m, keyRune('n'))
	assert.Equal(t, confirmNone, m.confirm)
	assert.Empty(t, records.deletedZone)

	// подтверждение выполняет удаление
	m, _ = applyMsg(t, m, keyRune('d'))
	_, cmd := applyMsg(t, m, keyRune('y'))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, zoneDeletedMsg{}, msg)
	assert.Equal(t, "notes", records.deletedZone)
}

func TestMainLoop_SyncKeyRunsSelectedZone(t *testing.T) {
	sync := &stubSyncService{}
	m := newTestLoop(&stubRecordService{}, sync)
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: "notes"}}})

	m, cmd := applyMsg(t, m, keyRune('s'))
	require.NotNil(t, cmd)
	assert.True(t, m.syncing)

	msg := cmd()
	assert.IsType(t, syncDoneMsg{}, msg)
	assert.Equal(t, "notes", sync.syncedZone)

	m, cmd = applyMsg(t, m, msg)
	assert.False(t, m.syncing)
	require.NotNil(t, cmd)
}

func TestMainLoop_SyncBusyError(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: "notes"}}})

	m, _ = applyMsg(t, m, syncDoneMsg{zone: "notes", err: service.ErrZoneBusy})

	assert.Contains(t, m.View(), "Синхронизация зоны уже выполняется")
}

func TestMainLoop_LogoutKeyQuits(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: []models.Zone{{Name: "notes"}}})

	m, cmd := applyMsg(t, m, keyRune('l'))

	assert.True(t, m.logout)
	require.NotNil(t, cmd)
}

// ── детальный просмотр ──

func TestMainLoop_DetailShowsSortedFields(t *testing.T) {
	record := models.Record{
		RecordID: "rec-1",
		Zone:     "notes",
		Type:     "note",
		Fields: models.FieldMap{
			"title": models.NewFieldString("хлеб"),
			"done":  models.NewFieldBool(true),
		},
	}
	m := newTestLoop(&stubRecordService{records: []models.Record{record}}, &stubSyncService{})
	m, _ = applyMsg(t, m, recordsLoadedMsg{zone: "notes", records: []models.Record{record}})
	m.stage = stageRecords

	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stageDetail, m.stage)
	// имена полей отсортированы
	assert.Equal(t, []string{"done", "title"}, m.fieldNames)
	view := m.View()
	assert.Contains(t, view, "хлеб")
	assert.Contains(t, view, "rec-1")
}

// ── формы ──

func TestMainLoop_AddZoneFlow(t *testing.T) {
	records := &stubRecordService{}
	m := newTestLoop(records, &stubSyncService{})
	m, _ = applyMsg(t, m, zonesLoadedMsg{zones: nil})

	m, _ = applyMsg(t, m, keyRune('z'))
	assert.Equal(t, stageAddZone, m.stage)

	// пустое имя отклоняется
	m, cmd := applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Нужно имя зоны")

	m.zoneInput.SetValue("work")
	m, cmd = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, zoneCreatedMsg{}, msg)
	assert.Equal(t, "work", records.createdZone)

	m, _ = applyMsg(t, m, msg)
	assert.Equal(t, stageZones, m.stage)
	assert.Contains(t, m.View(), "Зона \"work\" создана")
}

func TestMainLoop_AddRecordCollectsFields(t *testing.T) {
	records := &stubRecordService{}
	m := newTestLoop(records, &stubSyncService{})
	m, _ = applyMsg(t, m, recordsLoadedMsg{zone: "notes"})
	m.stage = stageRecords

	m, _ = applyMsg(t, m, keyRune('n'))
	require.Equal(t, stageAddRecord, m.stage)

	m.addInputs[0].SetValue("note")
	m.addInputs[1].SetValue("title")
	m.addInputs[2].SetValue("молоко")

	// enter добавляет пару имя/значение в черновик
	m, _ = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.addFields, 1)
	assert.Equal(t, models.NewFieldString("молоко"), m.addFields["title"])
	assert.Empty(t, m.addInputs[1].Value())

	// ctrl+s отправляет запись на сохранение
	m, cmd := applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.addSaving)

	msg := cmd()
	assert.IsType(t, recordSavedMsg{}, msg)

	m, _ = applyMsg(t, m, msg)
	assert.Equal(t, stageRecords, m.stage)
	assert.Contains(t, m.View(), "Запись сохранена")
}

func TestMainLoop_AddRecordRequiresTypeAndFields(t *testing.T) {
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})
	m, _ = applyMsg(t, m, recordsLoadedMsg{zone: "notes"})
	m.stage = stageRecords
	m, _ = applyMsg(t, m, keyRune('n'))

	m, cmd := applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Нужно указать тип записи")

	m.addInputs[0].SetValue("note")
	m, cmd = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Нужно хотя бы одно поле")
}

// ── строка статуса синхронизации ──

func TestMainLoop_SyncStatusLine(t *testing.T) {
	lastSync := time.Date(2026, 8, 26, 12, 30, 45, 0, time.Local)
	m := newTestLoop(&stubRecordService{}, &stubSyncService{})

	m, cmd := applyMsg(t, m, syncStatusMsg{status: service.SyncStatus{
		LastSync:     lastSync,
		PendingZones: []string{"notes", "work"},
		LastError:    "boom",
	}})
	// опрос статуса перепланируется
	require.NotNil(t, cmd)

	line := m.viewSyncStatusLine()
	assert.Contains(t, line, "ожидание")
	assert.Contains(t, line, "12:30:45")
	assert.Contains(t, line, "В очереди: 2")
	assert.Contains(t, line, "Ошибка: boom")
}

// ── хелперы отображения ──

func TestFieldPreview(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		value models.FieldValue
		want  string
	}{
		{name: "string", value: models.NewFieldString("привет"), want: "привет"},
		{name: "int", value: models.NewFieldInt64(42), want: "42"},
		{name: "double", value: models.NewFieldDouble(2.5), want: "2.5"},
		{name: "bool", value: models.NewFieldBool(true), want: "true"},
		{name: "bytes", value: models.NewFieldBytes([]byte{1, 2, 3}), want: "(3 байт)"},
		{name: "reference", value: models.NewFieldReference("rec-9", models.ReferenceActionNone), want: "→ rec-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldPreview(tt.value))
		})
	}

	assert.Equal(t, ts.Local().Format("2006-01-02 15:04:05"), fieldPreview(models.NewFieldTime(ts)))
}

func TestFieldClipboardValue(t *testing.T) {
	text, ok := fieldClipboardValue(models.NewFieldString("секрет"))
	assert.True(t, ok)
	assert.Equal(t, "секрет", text)

	_, ok = fieldClipboardValue(models.NewFieldString(""))
	assert.False(t, ok)

	// бинарные данные в буфер обмена не копируются
	_, ok = fieldClipboardValue(models.NewFieldBytes([]byte{1}))
	assert.False(t, ok)

	text, ok = fieldClipboardValue(models.NewFieldReference("rec-9", models.ReferenceActionCascade))
	assert.True(t, ok)
	assert.Equal(t, "rec-9", text)
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "very lo...", fitText("very long value", 10))
	assert.Equal(t, "ab", fitText("abcdef", 2))
}

func TestTimeOrDash(t *testing.T) {
	assert.Equal(t, "-", timeOrDash(time.Time{}))
	ts := time.Date(2026, 8, 26, 9, 15, 0, 0, time.Local)
	assert.Equal(t, "09:15:00", timeOrDash(ts))
}
