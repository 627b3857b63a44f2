package seed

import (
	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/repositories"
	"go.uber.org/zap"
)

func strptr(s string) *string { return &s }

// Demo streamer profiles for local development and demos. Fixed ids keep the
// load idempotent across restarts.
var demoStreamers = []models.Streamer{
	{
		ID:            "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		Name:          "Logan",
		WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
		Platforms:     []models.Platform{models.PlatformYouTube, models.PlatformTwitch},
		AvatarURL:     strptr("https://avatar.iran.liara.run/public/42"),
		DonationTiers: []models.DonationTier{
			{AmountUSD: 1.0, PopupMessage: "Thank you! 💙", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "Amazing support! 🎉", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "You're a legend! 🌟", DurationMS: 8000},
			{AmountUSD: 50.0, PopupMessage: "INSANE DONATION! 🔥🔥🔥", DurationMS: 10000},
		},
		ThankYouMessage: "Thanks for supporting my stream! Your donation helps me create better content. See you in the next stream! 🎮",
	},
	{
		ID:            "b2c3d4e5-f6a7-4b89-c012-defabcde3456",
		Name:          "Kim",
		WalletAddress: "0x8765432109fedcba8765432109fedcba87654321",
		Platforms:     []models.Platform{models.PlatformTwitch},
		AvatarURL:     strptr("https://avatar.iran.liara.run/public/88"),
		DonationTiers: []models.DonationTier{
			{AmountUSD: 2.0, PopupMessage: "감사합니다! 🙏", DurationMS: 3000},
			{AmountUSD: 5.0, PopupMessage: "대박! 🎊", DurationMS: 5000},
			{AmountUSD: 10.0, PopupMessage: "핵인싸! 😎", DurationMS: 7000},
		},
		ThankYouMessage: "후원 감사합니다! 더 좋은 방송으로 보답하겠습니다! ❤️",
	},
	{
		ID:            "c3d4e5f6-a7b8-4c90-d123-efabcdef4567",
		Name:          "Alex",
		WalletAddress: "0xabcdef1234567890abcdef1234567890abcdef12",
		Platforms:     []models.Platform{models.PlatformYouTube},
		AvatarURL:     strptr("https://avatar.iran.liara.run/public/15"),
		DonationTiers: []models.DonationTier{
			{AmountUSD: 3.0, PopupMessage: "Much appreciated! 🙌", DurationMS: 3000},
			{AmountUSD: 7.0, PopupMessage: "You're awesome! ✨", DurationMS: 5000},
			{AmountUSD: 15.0, PopupMessage: "MVP! 👑", DurationMS: 8000},
		},
		ThankYouMessage: "Thank you so much for the donation! It really means a lot. Let's keep building together! 🚀",
	},
}

// LoadDemoStreamers writes the demo profiles, skipping ones already present.
func LoadDemoStreamers(repo *repositories.StreamerRepo, log *zap.Logger) error {
	for i := range demoStreamers {
		s := &demoStreamers[i]

		existing, err := repo.GetByID(s.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Debug("demo streamer already present", zap.String("name", s.Name))
			continue
		}

		if err := repo.Save(s); err != nil {
			return err
		}
		log.Info("demo streamer loaded", zap.String("name", s.Name), zap.String("streamer_id", s.ID))
	}
	return nil
}
