package notify

import (
	"log/slog"
	"time"

	"guestlist/src-server/model"
	"guestlist/src-server/utils"
)

// Discord posts transition notices to a configured channel. Dispatch is
// best-effort: failures are logged and swallowed so a dropped message can
// never undo a committed transition.
type Discord struct {
	as        *utils.AppState
	channelID string
}

func NewDiscord(as *utils.AppState) *Discord {
	return &Discord{
		as:        as,
		channelID: as.Config.GetDiscordNotifyChannelID(),
	}
}

func (d *Discord) Transition(registration *model.Registration, oldStatus, newStatus model.RegistrationStatus) {
	if d.as.DgSession == nil || d.channelID == "" {
		slog.Debug("notification channel not configured, skipping",
			"registration", registration.ID,
			"old", oldStatus,
			"new", newStatus)
		return
	}

	embed := registration.ToDiscordEmbed()
	if oldStatus != newStatus {
		embed.Description = string(oldStatus) + " -> " + string(newStatus)
	}
	embed.Footer.Text += " | " + time.Now().
		In(d.as.Config.GetLocation()).
		Format(time.RFC1123)

	go func() {
		startTimer := time.Now()
		if _, err := d.as.DgSession.ChannelMessageSendEmbed(d.channelID, embed); err != nil {
			slog.Error("can't send transition notification",
				"registration", registration.ID,
				"old", oldStatus,
				"new", newStatus,
				"error", err)
			return
		}
		d.as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
	}()
}
