package flexmessage

// SlotStyle is the display style of a template slot
type SlotStyle string

const (
	SlotStyleCover   SlotStyle = "cover"
	SlotStyleTitle   SlotStyle = "title"
	SlotStyleBody    SlotStyle = "body"
	SlotStyleCaption SlotStyle = "caption"
	SlotStylePrimary SlotStyle = "primary"
	SlotStyleLink    SlotStyle = "link"
	SlotStyleRule    SlotStyle = "rule"
)

// TemplateSlot is a fixed position of a preset
type TemplateSlot struct {
	ID           string      `json:"id"`
	Kind         ElementKind `json:"kind"`
	Label        string      `json:"label"`
	DefaultValue string      `json:"default_value,omitempty"`
	Style        SlotStyle   `json:"style"`
}

// TemplateDefinition is a read-only preset used to seed a guided editor
type TemplateDefinition struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Slots       []TemplateSlot `json:"slots"`
}

// Templates are the built-in presets
var Templates = []TemplateDefinition{
	{
		Name:        "coupon",
		Title:       "優惠券",
		Description: "主圖、優惠標題、使用期限與領取按鈕",
		Slots: []TemplateSlot{
			{ID: "cover", Kind: ElementImage, Label: "主圖", Style: SlotStyleCover},
			{ID: "title", Kind: ElementText, Label: "標題", DefaultValue: "限時優惠", Style: SlotStyleTitle},
			{ID: "offer", Kind: ElementText, Label: "優惠內容", DefaultValue: "全館商品 8 折", Style: SlotStyleBody},
			{ID: "rule", Kind: ElementSeparator, Label: "分隔線", Style: SlotStyleRule},
			{ID: "expiry", Kind: ElementText, Label: "使用期限", DefaultValue: "使用期限：活動結束前", Style: SlotStyleCaption},
			{ID: "claim", Kind: ElementButton, Label: "按鈕文字", DefaultValue: "立即領取", Style: SlotStylePrimary},
		},
	},
	{
		Name:        "announcement",
		Title:       "活動公告",
		Description: "標題、說明文字與連結按鈕",
		Slots: []TemplateSlot{
			{ID: "title", Kind: ElementText, Label: "標題", DefaultValue: "活動公告", Style: SlotStyleTitle},
			{ID: "body", Kind: ElementText, Label: "內容", DefaultValue: "歡迎參加本月會員活動！", Style: SlotStyleBody},
			{ID: "more", Kind: ElementButton, Label: "按鈕文字", DefaultValue: "了解更多", Style: SlotStyleLink},
		},
	},
	{
		Name:        "product",
		Title:       "商品介紹",
		Description: "商品圖片、名稱、價格與購買按鈕",
		Slots: []TemplateSlot{
			{ID: "photo", Kind: ElementImage, Label: "商品圖片", Style: SlotStyleCover},
			{ID: "name", Kind: ElementText, Label: "商品名稱", DefaultValue: "商品名稱", Style: SlotStyleTitle},
			{ID: "price", Kind: ElementText, Label: "價格", DefaultValue: "NT$ 990", Style: SlotStyleBody},
			{ID: "buy", Kind: ElementButton, Label: "購買按鈕", DefaultValue: "立即購買", Style: SlotStylePrimary},
			{ID: "save", Kind: ElementButton, Label: "收藏按鈕", DefaultValue: "加入收藏", Style: SlotStyleLink},
		},
	},
}

// FindTemplate looks a preset up by name
func FindTemplate(name string) (TemplateDefinition, bool) {
	for _, t := range Templates {
		if t.Name == name {
			return t, true
		}
	}
	return TemplateDefinition{}, false
}

// Slot looks a slot up by id
func (d TemplateDefinition) Slot(id string) (TemplateSlot, bool) {
	for _, s := range d.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return TemplateSlot{}, false
}

// TemplateOverrides holds user values keyed by template name, then slot id
type TemplateOverrides map[string]map[string]string

// Set records a value for a slot. Slots that carry no content are ignored.
func (o TemplateOverrides) Set(def TemplateDefinition, slotID, value string) bool {
	slot, ok := def.Slot(slotID)
	if !ok || !slot.Kind.HasContent() {
		return false
	}
	if o[def.Name] == nil {
		o[def.Name] = make(map[string]string)
	}
	o[def.Name][slotID] = value
	return true
}

// Value returns the override for a slot, or its default
func (o TemplateOverrides) Value(def TemplateDefinition, slot TemplateSlot) string {
	if values, ok := o[def.Name]; ok {
		if v, ok := values[slot.ID]; ok {
			return v
		}
	}
	return slot.DefaultValue
}

// SlotSection is where a slot lands when a template seeds an editor:
// images in Hero, buttons in Footer, everything else in Body
func SlotSection(slot TemplateSlot) SectionName {
	switch slot.Kind {
	case ElementImage:
		return SectionHero
	case ElementButton:
		return SectionFooter
	default:
		return SectionBody
	}
}

// Build seeds four sections from the preset and the overrides
func (d TemplateDefinition) Build(ids IDGenerator, overrides TemplateOverrides) Sections {
	sections := NewSections()
	for _, slot := range d.Slots {
		name := SlotSection(slot)
		el := NewElementWithContent(ids, slot.Kind, overrides.Value(d, slot))
		sections[name] = InsertAt(sections[name], el, len(sections[name]))
	}
	return sections
}
