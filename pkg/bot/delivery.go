package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lutherbot/pkg/persona"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"
)

// Room left in each chunk for the " (i/n)" part marker
const partMarkerReserve = 10

type DeliveryOptions struct {
	MaxLength int
	// Replies longer than this are sent as a card
	CardThreshold int
	ChunkPause    time.Duration
}

// Delivery sends a finished reply as plain text, a card or several parts.
type Delivery struct {
	card CardStyle
	opts DeliveryOptions
	now  func() time.Time
}

func NewDelivery(card CardStyle, opts DeliveryOptions) *Delivery {
	return &Delivery{card: card, opts: opts, now: time.Now}
}

// Send delivers text to the channel of in. If the chosen format fails, the
// reply is retried once as plain text cut to MaxLength.
func (d *Delivery) Send(ctx context.Context, s Session, in Inbound, text string, mentioned bool) error {
	err := d.send(ctx, s, in, text, mentioned)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	slog.Warn("Error sending reply, retrying as plain text", "channel", in.ChannelID, "error", err)

	if _, retryErr := s.ChannelMessageSend(in.ChannelID, persona.Truncate(text, d.opts.MaxLength)); retryErr != nil {
		return oops.
			In("delivery").
			With("channel", in.ChannelID).
			Wrapf(retryErr, "plain text retry failed after %v", err)
	}
	return nil
}

func (d *Delivery) send(ctx context.Context, s Session, in Inbound, text string, mentioned bool) error {
	length := persona.RuneLen(text)

	switch {
	case length > d.opts.MaxLength:
		return d.sendParts(ctx, s, in.ChannelID, text)
	case mentioned || length > d.opts.CardThreshold:
		_, err := s.ChannelMessageSendComplex(in.ChannelID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{d.card.NewCard(text, in, d.now())},
		})
		return err
	default:
		_, err := s.ChannelMessageSend(in.ChannelID, text)
		return err
	}
}

// sendParts numbers every part but the last with " (i/n)".
func (d *Delivery) sendParts(ctx context.Context, s Session, channelID, text string) error {
	chunkLength := d.opts.MaxLength - partMarkerReserve
	if chunkLength < 1 {
		chunkLength = d.opts.MaxLength
	}
	chunks := SplitMessage(text, chunkLength)

	for i, chunk := range chunks {
		content := chunk
		if i < len(chunks)-1 {
			content = fmt.Sprintf("%s (%d/%d)", chunk, i+1, len(chunks))
		}

		if _, err := s.ChannelMessageSend(channelID, content); err != nil {
			return oops.
				In("delivery").
				With("part", i+1, "parts", len(chunks)).
				Wrap(err)
		}

		if i < len(chunks)-1 {
			if err := sleep(ctx, d.opts.ChunkPause); err != nil {
				return err
			}
		}
	}
	return nil
}
