package entities

// Attribute is one metadata trait on an NFT instance. Value is untyped on
// the wire: numbers, strings and null all occur in the wild.
type Attribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// InstanceMetadata is the off-chain metadata attached to an NFT instance
type InstanceMetadata struct {
	Tags       []string    `json:"tags"`
	Attributes []Attribute `json:"attributes"`
}

// TokenInstance is one held NFT within a collection
type TokenInstance struct {
	Metadata *InstanceMetadata `json:"metadata"`
}

// NFTCollection is one collection holding from the explorer's
// nft/collections endpoint. Amount is a numeric string.
type NFTCollection struct {
	Amount         string          `json:"amount"`
	Token          TokenInfo       `json:"token"`
	TokenInstances []TokenInstance `json:"token_instances"`
}
