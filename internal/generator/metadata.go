package generator

import (
	"fmt"

	"basemint-backend/internal/model"
)

const (
	DefaultCollectionName = "BaseMint Genesis"
	DefaultExternalURL    = "https://basemint-genesis.vercel.app"

	characterName = "Pikachu"
	capName       = "Base Logo Cap"
	description   = "A unique Pikachu NFT wearing a Base logo cap, minted on Base Mainnet. Each NFT is generated with unique traits and accessories."
)

// 属性的 trait_type，顺序即元数据中的顺序
const (
	TraitCharacter  = "Character"
	TraitCap        = "Cap"
	TraitBodyColor  = "Body Color"
	TraitCheekColor = "Cheek Color"
	TraitCapColor   = "Cap Color"
	TraitExpression = "Expression"
	TraitAccessory  = "Accessory"
)

// Attributes builds the attribute list in canonical order. Accessory entries
// follow the fixed check order and appear only when the trait is set.
func Attributes(traits TraitRecord) []model.AttributeEntry {
	attrs := []model.AttributeEntry{
		{TraitType: TraitCharacter, Value: characterName},
		{TraitType: TraitCap, Value: capName},
		{TraitType: TraitBodyColor, Value: traits.BodyColor},
		{TraitType: TraitCheekColor, Value: traits.CheekColor},
		{TraitType: TraitCapColor, Value: traits.CapColor},
		{TraitType: TraitExpression, Value: traits.Expression.String()},
	}
	for _, a := range traits.Accessories() {
		attrs = append(attrs, model.AttributeEntry{TraitType: TraitAccessory, Value: a.Name})
	}
	return attrs
}

// AssembleMetadata wraps the attributes and the encoded image in an asset
// metadata record. animation_url and youtube_url are always null.
func (g *Generator) AssembleMetadata(tokenID int64, traits TraitRecord, dataURI string) *model.AssetMetadata {
	return &model.AssetMetadata{
		Name:            fmt.Sprintf("%s #%d", g.collectionName, tokenID),
		Description:     description,
		Image:           dataURI,
		ExternalURL:     g.externalURL,
		Attributes:      Attributes(traits),
		BackgroundColor: traits.BackgroundColor,
	}
}
