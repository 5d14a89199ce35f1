package catalog

import (
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
)

// builtinServices is served while the backend has no catalog to offer.
var builtinServices = []models.Service{
	builtin(1, "Instagram Followers [Premium]", "Abonnés de haute qualité, profil réel, garantie 30 jours.", "2.49 MAD / 1000", "InstagramIcon", "Instagram", "Instagram", 100, 100000, "Haute Qualité", "Garantie 30j", "Vitesse Rapide"),
	builtin(2, "Instagram Likes [Vrais]", "Likes instantanés de profils actifs, sans perte.", "0.89 MAD / 1000", "InstagramIcon", "Instagram", "Instagram", 50, 50000, "Instantané", "Profils Réels", "Sans Perte"),
	builtin(3, "Instagram Views [Reels]", "Vues pour vos Reels avec une excellente rétention.", "0.15 MAD / 1000", "InstagramIcon", "Instagram", "Instagram", 100, 1000000, "Max Rétention", "Viral Boost", "Pas de Mot de Passe"),
	builtin(4, "Instagram Auto-Likes [Mensuel]", "Likes automatiques sur chaque nouvelle publication.", "19.99 MAD / mois", "InstagramIcon", "Instagram", "Instagram", 1, 1, "Bot Automatisé", "Engagement Continu", "Support 24/7"),
	builtin(5, "Instagram Comments [Custom]", "Commentaires personnalisés rédigés par vous ou par IA.", "5.50 MAD / 50", "InstagramIcon", "Instagram", "Instagram", 10, 1000, "Personnalisé", "IA", "Rapide"),
	builtin(8, "TikTok Followers [Real]", "Abonnés TikTok stables pour augmenter votre autorité.", "4.99 MAD / 1000", "Video", "TikTok", "TikTok", 100, 100000, "Stable", "Profils Réels", "Rapide"),
	builtin(10, "TikTok Views [For You Page]", "Vues ciblées pour aider à passer dans les 'Pour Toi'.", "0.10 MAD / 1000", "Video", "TikTok", "TikTok", 100, 10000000, "FYP", "Instantané", "Sans Perte"),
	builtin(13, "YouTube Subscribers [No Drop]", "Abonnés YouTube de haute qualité avec garantie à vie.", "15.00 MAD / 1000", "YoutubeIcon", "YouTube", "YouTube", 100, 50000, "Garantie à Vie", "Sans Perte", "Sécurisé"),
	builtin(15, "YouTube Watch Time [4000H]", "Heures de visionnage pour activer la monétisation.", "89.00 MAD / pack", "YoutubeIcon", "YouTube", "YouTube", 1, 1, "Monetization Ready", "Qualité Max", "Support Dédié"),
	builtin(18, "Facebook Page Likes + Followers", "Développez la crédibilité de votre page Facebook.", "9.50 MAD / 1000", "FacebookIcon", "Facebook", "Facebook", 100, 100000, "Crédibilité", "Stable", "Rapide"),
	builtin(77, "Facebook Review [5 Stars]", "Avis positifs pour votre page ou établissement.", "1.50 MAD / avis", "FacebookIcon", "Facebook", "Facebook", 1, 10, "Verified Quality", "Custom Text", "Safe"),
	builtin(21, "Twitter Followers [Premium]", "Abonnés pour votre profil X avec garantie.", "12.00 MAD / 1000", "TwitterIcon", "Twitter", "Twitter", 100, 50000, "Premium", "Garantie", "Stable"),
	builtin(40, "Discord Server Boost [Lvl 3]", "Boostez votre serveur au niveau maximum.", "35.00 MAD / pack", "DiscordIcon", "Discord", "Discord", 1, 1, "Level 3 Boost", "Nitro Features", "Instant"),
	builtin(32, "Backlinks SEO Autorité", "Liens depuis des sites DR 50+ pour booster Google.", "49.00 MAD / pack", "Zap", "SEO", "Web", 1, 1, "Montez en Rank", "Dofollow", "Permanent"),
	builtin(113, "SEO Audit Complete [IA]", "Rapport détaillé sur les failles de votre site.", "19.00 MAD / audit", "Zap", "SEO", "Web", 1, 1, "Deep Scan", "IA Recommendations", "Action Plan"),
}

func builtin(id int, title, description, price, icon, category, platform string, lo, hi int, features ...string) models.Service {
	asset := LookupAsset(icon)
	return models.Service{
		ID:          id,
		Title:       title,
		Description: description,
		Price:       pricing.ParsePrice(price),
		Min:         lo,
		Max:         hi,
		Category:    category,
		Platform:    platform,
		Features:    features,
		Icon:        asset.Icon,
		Color:       asset.Color,
		Bg:          asset.Bg,
	}
}

// Builtin returns a copy of the fallback catalog.
func Builtin() []models.Service {
	out := make([]models.Service, len(builtinServices))
	copy(out, builtinServices)
	return out
}
