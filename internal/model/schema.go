package model

import (
	"github.com/eyexzy/serde-practice/internal/codec"
	"github.com/eyexzy/serde-practice/internal/schema"
)

// Entity names used as codec registry keys.
const (
	EntityPublicTariff  = "PublicTariff"
	EntityPrivateTariff = "PrivateTariff"
	EntityStream        = "Stream"
	EntityGift          = "Gift"
	EntityDebugInfo     = "DebugInfo"
	EntityRequest       = "Request"
	EntityEvent         = "Event"
)

// FieldEventDate is the wire name of Event.Date.
const FieldEventDate = "date"

var publicTariffSchema = &schema.Object{
	Name: EntityPublicTariff,
	Fields: []schema.Field{
		{Name: "id", GoName: "ID", Kind: schema.KindUint32},
		{Name: "price", GoName: "Price", Kind: schema.KindUint32},
		{Name: "duration", GoName: "Duration", Kind: schema.KindDuration},
		{Name: "description", GoName: "Description", Kind: schema.KindString},
	},
}

var privateTariffSchema = &schema.Object{
	Name: EntityPrivateTariff,
	Fields: []schema.Field{
		{Name: "client_price", GoName: "ClientPrice", Kind: schema.KindUint32},
		{Name: "duration", GoName: "Duration", Kind: schema.KindDuration},
		{Name: "description", GoName: "Description", Kind: schema.KindString},
	},
}

var streamSchema = &schema.Object{
	Name: EntityStream,
	Fields: []schema.Field{
		{Name: "user_id", GoName: "UserID", Kind: schema.KindUUID},
		{Name: "is_private", GoName: "IsPrivate", Kind: schema.KindBool},
		{Name: "settings", GoName: "Settings", Kind: schema.KindUint32},
		{Name: "shard_url", GoName: "ShardURL", Kind: schema.KindURL},
		{Name: "public_tariff", GoName: "PublicTariff", Kind: schema.KindObject, Object: publicTariffSchema},
		{Name: "private_tariff", GoName: "PrivateTariff", Kind: schema.KindObject, Object: privateTariffSchema},
	},
}

var giftSchema = &schema.Object{
	Name: EntityGift,
	Fields: []schema.Field{
		{Name: "id", GoName: "ID", Kind: schema.KindUint32},
		{Name: "price", GoName: "Price", Kind: schema.KindUint32},
		{Name: "description", GoName: "Description", Kind: schema.KindString},
	},
}

var debugInfoSchema = &schema.Object{
	Name: EntityDebugInfo,
	Fields: []schema.Field{
		{Name: "duration", GoName: "Duration", Kind: schema.KindDuration},
		{Name: "at", GoName: "At", Kind: schema.KindTimestamp},
	},
}

var requestSchema = &schema.Object{
	Name: EntityRequest,
	Fields: []schema.Field{
		{Name: "type", GoName: "Type", Kind: schema.KindEnum, Enum: []string{string(RequestTypeSuccess)}},
		{Name: "stream", GoName: "Stream", Kind: schema.KindObject, Object: streamSchema},
		{Name: "gifts", GoName: "Gifts", Kind: schema.KindList, Object: giftSchema},
		{Name: "debug", GoName: "Debug", Kind: schema.KindObject, Object: debugInfoSchema},
	},
}

var eventSchema = &schema.Object{
	Name: EntityEvent,
	Fields: []schema.Field{
		{Name: "name", GoName: "Name", Kind: schema.KindString},
		{Name: FieldEventDate, GoName: "Date", Kind: schema.KindString},
	},
}

func (PublicTariff) Schema() *schema.Object  { return publicTariffSchema }
func (PrivateTariff) Schema() *schema.Object { return privateTariffSchema }
func (Stream) Schema() *schema.Object        { return streamSchema }
func (Gift) Schema() *schema.Object          { return giftSchema }
func (DebugInfo) Schema() *schema.Object     { return debugInfoSchema }
func (Request) Schema() *schema.Object       { return requestSchema }
func (Event) Schema() *schema.Object         { return eventSchema }

// NewCodecRegistry returns the field codecs of the model: Event.date carries
// the "Date: " prefix on the wire.
func NewCodecRegistry() *codec.Registry {
	return codec.NewRegistry().MustRegister(EntityEvent, FieldEventDate, codec.DateCodec())
}
