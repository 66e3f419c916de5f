// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loopStage int

const (
	stageZones loopStage = iota
	stageRecords
	stageDetail
	stageAddZone
	stageAddRecord
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmRecord
	confirmZone
)

const statusPollInterval = 2 * time.Second

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session

	stage   loopStage
	loading bool
	status  string
	errMsg  string

	zones   []models.Zone
	zoneIdx int

	currentZone string
	records     []models.Record
	recIdx      int

	fieldNames []string
	fieldIdx   int

	zoneInput textinput.Model

	addInputs []textinput.Model
	addFocus  int
	addFields models.FieldMap
	addErr    string
	addSaving bool

	confirm       confirmKind
	confirmTarget string

	syncing    bool
	syncStatus service.SyncStatus

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, session models.Session) mainLoopModel {
	if session.UserID > 0 {
		setSessionUserID(session.UserID)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		session:  session,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadZones(), m.cmdPollStatus())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case zonesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.zones = msg.zones
		m.clampZoneIdx()
		return m, nil

	case recordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.currentZone = msg.zone
		m.records = msg.records
		m.clampRecIdx()
		return m, nil

	case recordSavedMsg:
		m.addSaving = false
		if msg.err != nil {
			m.addErr = msg.err.Error()
			return m, nil
		}
		m.resetAddRecord()
		m.stage = stageRecords
		m.status = "Запись сохранена"
		m.loading = true
		return m, m.cmdLoadRecords(m.currentZone)

	case recordDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %v", msg.err)
			return m, nil
		}
		m.status = "Запись удалена"
		m.errMsg = ""
		m.loading = true
		if m.stage == stageDetail {
			m.stage = stageRecords
		}
		return m, m.cmdLoadRecords(m.currentZone)

	case zoneCreatedMsg:
		if msg.err != nil {
			m.addErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.stage = stageZones
		m.status = "Зона \"" + msg.zone.Name + "\" создана"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadZones()

	case zoneDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.status = "Зона удалена"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadZones()

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
			return m, nil
		}
		m.status = "Синхронизация завершена"
		m.errMsg = ""
		m.loading = true
		if m.stage == stageRecords || m.stage == stageDetail {
			return m, m.cmdLoadRecords(m.currentZone)
		}
		return m, m.cmdLoadZones()

	case syncStatusMsg:
		m.syncStatus = msg.status
		return m, m.cmdPollStatus()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", msg.err)
			return m, nil
		}
		m.status = "Скопировано"
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.stage == stageAddZone || m.stage == stageAddRecord {
			return m.updateForms(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirm != confirmNone {
		return m.updateConfirm(keyMsg)
	}

	switch m.stage {
	case stageZones:
		return m.updateZones(keyMsg)
	case stageRecords:
		return m.updateRecords(keyMsg)
	case stageDetail:
		return m.updateDetail(keyMsg)
	case stageAddZone, stageAddRecord:
		return m.updateForms(msg)
	}

	return m, nil
}

func (m mainLoopModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		kind := m.confirm
		target := m.confirmTarget
		m.confirm = confirmNone
		m.confirmTarget = ""
		if kind == confirmZone {
			return m, m.cmdDeleteZone(target)
		}
		return m, m.cmdDeleteRecord(m.currentZone, target)
	case key.Matches(keyMsg, keys.no):
		m.confirm = confirmNone
		m.confirmTarget = ""
	}
	return m, nil
}

func (m mainLoopModel) updateZones(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.zoneIdx > 0 {
			m.zoneIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.zoneIdx < len(m.zones)-1 {
			m.zoneIdx++
		}
	case key.Matches(keyMsg, keys.enter):
		zone, ok := m.currentZoneItem()
		if !ok {
			m.status = "Нет зон"
			return m, nil
		}
		m.stage = stageRecords
		m.loading = true
		m.status = ""
		return m, m.cmdLoadRecords(zone.Name)
	case key.Matches(keyMsg, keys.newZone):
		m.startAddZone()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.sync):
		zone, ok := m.currentZoneItem()
		if !ok {
			m.status = "Нет зон"
			return m, nil
		}
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "Синхронизация..."
		m.errMsg = ""
		return m, m.cmdSync(zone.Name)
	case key.Matches(keyMsg, keys.delete):
		zone, ok := m.currentZoneItem()
		if !ok {
			m.status = "Нет зон"
			return m, nil
		}
		if zone.Name == models.DefaultZone {
			m.errMsg = "Зону по умолчанию удалить нельзя"
			return m, nil
		}
		m.confirm = confirmZone
		m.confirmTarget = zone.Name
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		clearSessionUserID()
		return m, tea.Quit
	}
	return m, nil
}

func (m mainLoopModel) updateRecords(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.stage = stageZones
		m.status = ""
		m.errMsg = ""
	case key.Matches(keyMsg, keys.up):
		if m.recIdx > 0 {
			m.recIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.recIdx < len(m.records)-1 {
			m.recIdx++
		}
	case key.Matches(keyMsg, keys.enter):
		record, ok := m.currentRecord()
		if !ok {
			m.status = "Нет записей"
			return m, nil
		}
		m.openDetail(record)
	case key.Matches(keyMsg, keys.newItem):
		m.startAddRecord()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "Синхронизация..."
		m.errMsg = ""
		return m, m.cmdSync(m.currentZone)
	case key.Matches(keyMsg, keys.delete):
		record, ok := m.currentRecord()
		if !ok {
			m.status = "Нет записей"
			return m, nil
		}
		m.confirm = confirmRecord
		m.confirmTarget = record.RecordID
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	record, ok := m.currentRecord()
	if !ok {
		m.stage = stageRecords
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.stage = stageRecords
		m.status = ""
	case key.Matches(keyMsg, keys.up):
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.fieldIdx < len(m.fieldNames)-1 {
			m.fieldIdx++
		}
	case key.Matches(keyMsg, keys.copy):
		if m.fieldIdx >= len(m.fieldNames) {
			m.status = "Нечего копировать"
			return m, nil
		}
		name := m.fieldNames[m.fieldIdx]
		text, ok := fieldClipboardValue(record.Fields[name])
		if !ok {
			m.status = "Нечего копировать"
			return m, nil
		}
		return m, cmdCopyToClipboard(text)
	case key.Matches(keyMsg, keys.delete):
		m.confirm = confirmRecord
		m.confirmTarget = record.RecordID
	}
	return m, nil
}

func (m mainLoopModel) updateForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stage == stageAddZone {
		return m.updateAddZone(msg)
	}
	return m.updateAddRecord(msg)
}

func (m mainLoopModel) updateAddZone(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.stage = stageZones
			m.addErr = ""
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.zoneInput.Value())
			if name == "" {
				m.addErr = "Нужно имя зоны"
				return m, nil
			}
			m.addErr = ""
			return m, m.cmdCreateZone(name)
		}
	}

	var cmd tea.Cmd
	m.zoneInput, cmd = m.zoneInput.Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateAddRecord(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetAddRecord()
			m.stage = stageRecords
			return m, nil
		case "tab":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus + 1) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "shift+tab":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus - 1 + len(m.addInputs)) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.addInputs[1].Value())
			value := m.addInputs[2].Value()
			if name == "" {
				m.addErr = "Нужно имя поля"
				return m, nil
			}
			m.addFields[name] = models.NewFieldString(value)
			m.addInputs[1].SetValue("")
			m.addInputs[2].SetValue("")
			m.addErr = ""
			return m, nil
		case "ctrl+s":
			if m.addSaving {
				return m, nil
			}
			recordType := strings.TrimSpace(m.addInputs[0].Value())
			if recordType == "" {
				m.addErr = "Нужно указать тип записи"
				return m, nil
			}
			if len(m.addFields) == 0 {
				m.addErr = "Нужно хотя бы одно поле"
				return m, nil
			}
			m.addErr = ""
			m.addSaving = true
			return m, m.cmdSaveRecord(models.Record{
				Zone:   m.currentZone,
				Type:   recordType,
				Fields: m.addFields.Clone(),
			})
		}
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m *mainLoopModel) startAddZone() {
	input := textinput.New()
	input.Placeholder = "имя зоны"
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	m.zoneInput = input
	m.addErr = ""
	m.stage = stageAddZone
}

func (m *mainLoopModel) startAddRecord() {
	recordType := textinput.New()
	recordType.Placeholder = "тип (note, bookmark...)"
	recordType.Width = 40
	recordType.Focus()

	fieldName := textinput.New()
	fieldName.Placeholder = "имя поля"
	fieldName.Width = 40

	fieldValue := textinput.New()
	fieldValue.Placeholder = "значение"
	fieldValue.Width = 40

	m.addInputs = []textinput.Model{recordType, fieldName, fieldValue}
	m.addFocus = 0
	m.addFields = models.FieldMap{}
	m.addErr = ""
	m.addSaving = false
	m.stage = stageAddRecord
}

func (m *mainLoopModel) resetAddRecord() {
	m.addInputs = nil
	m.addFocus = 0
	m.addFields = nil
	m.addErr = ""
	m.addSaving = false
}

func (m *mainLoopModel) openDetail(record models.Record) {
	names := make([]string, 0, len(record.Fields))
	for name := range record.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	m.fieldNames = names
	m.fieldIdx = 0
	m.stage = stageDetail
	m.status = ""
}

func (m *mainLoopModel) clampZoneIdx() {
	if m.zoneIdx >= len(m.zones) {
		m.zoneIdx = len(m.zones) - 1
	}
	if m.zoneIdx < 0 {
		m.zoneIdx = 0
	}
}

func (m *mainLoopModel) clampRecIdx() {
	if m.recIdx >= len(m.records) {
		m.recIdx = len(m.records) - 1
	}
	if m.recIdx < 0 {
		m.recIdx = 0
	}
}

func (m mainLoopModel) currentZoneItem() (models.Zone, bool) {
	if len(m.zones) == 0 || m.zoneIdx < 0 || m.zoneIdx >= len(m.zones) {
		return models.Zone{}, false
	}
	return m.zones[m.zoneIdx], true
}

func (m mainLoopModel) currentRecord() (models.Record, bool) {
	if len(m.records) == 0 || m.recIdx < 0 || m.recIdx >= len(m.records) {
		return models.Record{}, false
	}
	return m.records[m.recIdx], true
}

// ── commands ──

func (m mainLoopModel) cmdLoadZones() tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		zones, err := svc.ListZones(ctx)
		return zonesLoadedMsg{zones: zones, err: err}
	}
}

func (m mainLoopModel) cmdLoadRecords(zone string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		records, err := svc.ListRecords(ctx, zone)
		return recordsLoadedMsg{zone: zone, records: records, err: err}
	}
}

func (m mainLoopModel) cmdSaveRecord(record models.Record) tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		_, err := svc.SaveRecord(ctx, record)
		return recordSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdDeleteRecord(zone, recordID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		err := svc.DeleteRecord(ctx, zone, recordID)
		return recordDeletedMsg{err: err}
	}
}

func (m mainLoopModel) cmdCreateZone(name string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		zone, err := svc.CreateZone(ctx, name)
		return zoneCreatedMsg{zone: zone, err: err}
	}
}

func (m mainLoopModel) cmdDeleteZone(name string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.RecordService

	return func() tea.Msg {
		err := svc.DeleteZone(ctx, name)
		return zoneDeletedMsg{err: err}
	}
}

func (m mainLoopModel) cmdSync(zone string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		err := svc.Sync(ctx, zone)
		return syncDoneMsg{zone: zone, err: err}
	}
}

func (m mainLoopModel) cmdPollStatus() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg {
		return syncStatusMsg{status: svc.Status(ctx)}
	})
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// ── views ──

func (m mainLoopModel) View() string {
	var page string

	switch m.stage {
	case stageZones:
		page = m.viewZones()
	case stageRecords:
		page = m.viewRecords()
	case stageDetail:
		page = m.viewDetail()
	case stageAddZone:
		page = m.viewAddZone()
	case stageAddRecord:
		page = m.viewAddRecord()
	}

	if m.confirm != confirmNone {
		page += "\n\n" + confirmModel{message: m.confirmTarget}.View()
	}

	return page
}

func (m mainLoopModel) viewZones() string {
	out := m.viewSyncStatusLine() + "\n"

	if m.errMsg != "" {
		out += errorStyle.Render("Ошибка: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += "Статус: " + m.status + "\n"
	}
	out += "\n"

	if m.loading {
		out += "Загрузка зон...\n"
	} else if len(m.zones) == 0 {
		out += "Зон нет\n"
	} else {
		out += "ID   │ Зона\n"
		out += "─────┼──────────────────────────────────────\n"
		for i, zone := range m.zones {
			cursor := " "
			if i == m.zoneIdx {
				cursor = ">"
			}
			out += fmt.Sprintf("%s %-3d│ %s\n", cursor, i+1, fitText(zone.Name, 36))
		}
	}

	return renderPage(
		"ЗОНЫ",
		strings.TrimRight(out, "\n"),
		"enter: открыть │ z: новая зона │ s: синхр. │ d: удалить │ l: выйти из аккаунта │ ↑/↓: нав.",
	)
}

func (m mainLoopModel) viewRecords() string {
	out := m.viewSyncStatusLine() + "\n"

	if m.errMsg != "" {
		out += errorStyle.Render("Ошибка: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += "Статус: " + m.status + "\n"
	}
	out += "\n"

	if m.loading {
		out += "Загрузка записей...\n"
	} else if len(m.records) == 0 {
		out += "Записей нет\n"
	} else {
		out += "ID   │ Запись                               │ Тип             │ Полей\n"
		out += "─────┼──────────────────────────────────────┼─────────────────┼──────\n"
		for i, record := range m.records {
			cursor := " "
			if i == m.recIdx {
				cursor = ">"
			}
			out += fmt.Sprintf(
				"%s %-3d│ %-36s │ %-15s │ %d\n",
				cursor,
				i+1,
				fitText(record.RecordID, 36),
				fitText(record.Type, 15),
				len(record.Fields),
			)
		}
	}

	return renderPage(
		"ЗОНА: "+m.currentZone,
		strings.TrimRight(out, "\n"),
		"enter: открыть │ n: новая запись │ s: синхр. │ d: удалить │ esc: к зонам │ ↑/↓: нав.",
	)
}

func (m mainLoopModel) viewDetail() string {
	record, ok := m.currentRecord()
	if !ok {
		return renderPage("ПРОСМОТР ЗАПИСИ", "Запись не найдена", "esc: назад")
	}

	var b strings.Builder
	b.WriteString("[ ОСНОВНОЕ ]\n")
	b.WriteString("ID        : " + record.RecordID + "\n")
	b.WriteString("Тип       : " + record.Type + "\n")
	b.WriteString("Зона      : " + record.Zone + "\n")
	if record.UpdatedAt != nil {
		b.WriteString("Обновлена : " + record.UpdatedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	}
	b.WriteString("\n[ ПОЛЯ ]\n")

	if len(m.fieldNames) == 0 {
		b.WriteString("(пусто)\n")
	} else {
		for i, name := range m.fieldNames {
			cursor := " "
			if i == m.fieldIdx {
				cursor = ">"
			}
			value := record.Fields[name]
			b.WriteString(fmt.Sprintf("%s %-20s │ %-9s │ %s\n", cursor, fitText(name, 20), value.Kind, fitText(fieldPreview(value), 40)))
		}
	}

	return renderPage(
		"ЗАПИСЬ: "+record.RecordID,
		strings.TrimRight(b.String(), "\n"),
		"c: копировать значение │ d: удалить │ esc: назад │ ↑/↓: нав.",
	)
}

func (m mainLoopModel) viewAddZone() string {
	out := "Имя зоны : [ " + m.zoneInput.View() + " ]\n"
	if m.addErr != "" {
		out += "\nОшибка: " + m.addErr + "\n"
	}
	return renderPage("НОВАЯ ЗОНА", strings.TrimRight(out, "\n"), "enter: создать │ esc: отмена")
}

func (m mainLoopModel) viewAddRecord() string {
	out := "Зона      : " + m.currentZone + "\n"
	out += "Тип       : [ " + m.addInputs[0].View() + " ]\n\n"
	out += "[ ПОЛЯ ]\n"

	if len(m.addFields) == 0 {
		out += "(пока нет)\n"
	} else {
		names := make([]string, 0, len(m.addFields))
		for name := range m.addFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out += fmt.Sprintf("%-20s │ %s\n", fitText(name, 20), fitText(m.addFields[name].Str, 40))
		}
	}

	out += "\nИмя поля  : [ " + m.addInputs[1].View() + " ]\n"
	out += "Значение  : [ " + m.addInputs[2].View() + " ]\n"

	if m.addErr != "" {
		out += "\nОшибка: " + m.addErr + "\n"
	}
	if m.addSaving {
		out += "\nСохранение...\n"
	}

	return renderPage(
		"НОВАЯ ЗАПИСЬ",
		strings.TrimRight(out, "\n"),
		"enter: добавить поле │ ctrl+s: сохранить │ tab: след. поле │ esc: отмена",
	)
}

func (m mainLoopModel) viewSyncStatusLine() string {
	state := "ожидание"
	if m.syncing || m.syncStatus.Syncing {
		state = "выполняется"
	}

	line := "Синхр.: " + state
	line += " │ Последняя: " + timeOrDash(m.syncStatus.LastSync)
	line += fmt.Sprintf(" │ В очереди: %d", len(m.syncStatus.PendingZones))
	if m.syncStatus.LastError != "" {
		line += " │ Ошибка: " + fitText(m.syncStatus.LastError, 30)
	}
	return line
}

func fieldPreview(v models.FieldValue) string {
	switch v.Kind {
	case models.KindString:
		return v.Str
	case models.KindInt64:
		return fmt.Sprintf("%d", v.Int)
	case models.KindDouble:
		return fmt.Sprintf("%g", v.Dbl)
	case models.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case models.KindBytes:
		return fmt.Sprintf("(%d байт)", len(v.Bytes))
	case models.KindTime:
		if v.Time == nil {
			return "-"
		}
		return v.Time.Local().Format("2006-01-02 15:04:05")
	case models.KindReference:
		if v.Ref == nil {
			return "-"
		}
		return "→ " + v.Ref.RecordID
	}
	return "?"
}

func fieldClipboardValue(v models.FieldValue) (string, bool) {
	switch v.Kind {
	case models.KindString:
		if v.Str == "" {
			return "", false
		}
		return v.Str, true
	case models.KindInt64:
		return fmt.Sprintf("%d", v.Int), true
	case models.KindDouble:
		return fmt.Sprintf("%g", v.Dbl), true
	case models.KindBool:
		return fmt.Sprintf("%t", v.Bool), true
	case models.KindTime:
		if v.Time == nil {
			return "", false
		}
		return v.Time.UTC().Format(time.RFC3339), true
	case models.KindReference:
		if v.Ref == nil {
			return "", false
		}
		return v.Ref.RecordID, true
	}
	return "", false
}
