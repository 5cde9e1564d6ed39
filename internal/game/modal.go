package game

// MissionView is what the front end renders for the mission modal.
type MissionView struct {
	Holder   string     `json:"holder"`
	Kind     HolderKind `json:"kind"`
	Emoji    string     `json:"emoji"`
	Text     string     `json:"text"`
	Progress int        `json:"progress"`
	Target   int        `json:"target"`
	Done     bool       `json:"done"`
}

// MissionModal tracks which holder's mission dialog is showing.
type MissionModal struct {
	ui     UI
	holder MissionHolder
}

func NewMissionModal(ui UI) *MissionModal {
	return &MissionModal{ui: ui}
}

func (m *MissionModal) IsOpen() bool {
	return m.holder != nil
}

// Holder returns the holder whose mission is showing, or nil.
func (m *MissionModal) Holder() MissionHolder {
	return m.holder
}

func (m *MissionModal) Open(h MissionHolder) {
	m.holder = h
	m.ui.OpenModal(ModalMission, m.View())
}

// Refresh re-sends the view after a delivery changed the mission.
func (m *MissionModal) Refresh() {
	if m.holder != nil {
		m.ui.OpenModal(ModalMission, m.View())
	}
}

func (m *MissionModal) Close() {
	if m.holder == nil {
		return
	}
	m.holder = nil
	m.ui.CloseModal(ModalMission)
}

func (m *MissionModal) View() MissionView {
	if m.holder == nil {
		return MissionView{}
	}
	v := MissionView{
		Holder: m.holder.Name(),
		Kind:   m.holder.Kind(),
		Emoji:  m.holder.Emoji(),
	}
	if ms := m.holder.Mission(); ms != nil {
		v.Text = ms.Text
		v.Progress = ms.ProgressCount
		v.Target = ms.TargetCount
		v.Done = !ms.Active()
		if v.Done {
			v.Text = "Bedankt voor je hulp! 🎉"
		}
	}
	return v
}
