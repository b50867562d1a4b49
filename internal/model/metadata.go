package model

// AttributeEntry 元数据中的单个属性
type AttributeEntry struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// AssetMetadata 遵循通用 NFT 元数据约定 (ERC-721 metadata JSON)
type AssetMetadata struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Image           string           `json:"image"` // data:image/png;base64,...
	ExternalURL     string           `json:"external_url"`
	Attributes      []AttributeEntry `json:"attributes"`
	BackgroundColor string           `json:"background_color"`
	AnimationURL    *string          `json:"animation_url"`
	YoutubeURL      *string          `json:"youtube_url"`
}

// Accessories 返回所有 Accessory 属性的值，保持原有顺序
func (m *AssetMetadata) Accessories() []string {
	var out []string
	for _, attr := range m.Attributes {
		if attr.TraitType == "Accessory" {
			out = append(out, attr.Value)
		}
	}
	return out
}

// Attribute 按 trait_type 查找第一个匹配的属性值
func (m *AssetMetadata) Attribute(traitType string) (string, bool) {
	for _, attr := range m.Attributes {
		if attr.TraitType == traitType {
			return attr.Value, true
		}
	}
	return "", false
}
