package service

import "haircolor-mixer/models"

// OfflineCacheName is bumped whenever the retained asset list changes
const OfflineCacheName = "hair-color-ai-v1"

var offlineAssets = []string{
	"/",
	"/catalog/brands",
	"/catalog/presets",
	"/catalog/recipes",
	"/offline/manifest",
	"/data/color-database.json",
}

// OfflineManifest returns the cache name and the assets retained for offline use
func OfflineManifest() models.OfflineManifest {
	assets := make([]string, len(offlineAssets))
	copy(assets, offlineAssets)
	return models.OfflineManifest{CacheName: OfflineCacheName, Assets: assets}
}
