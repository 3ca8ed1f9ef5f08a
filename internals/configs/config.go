package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret          string
	OpenAIAPIKey       string
	OpenAIModel        string
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string
	ChatSystemPrompt   string
)

// Preamble default untuk asisten pembelajaran. Bisa dioverride via ENV
// CHAT_SYSTEM_PROMPT karena redaksinya masih sering direvisi.
const defaultChatSystemPrompt = "Anda adalah asisten pembelajaran. Jawablah berdasarkan topik dari materi yang diberikan." +
	"Gunakan bahasa yang mudah dimengerti oleh pelajar." +
	"Jika pertanyaan di luar konteks topik, katakan bahwa Anda hanya dapat menjawab berdasarkan topik materi yang diberikan." +
	"Pastikan jawaban yang anda berikan benar dan akurat." +
	"Jangan mengarang jawaban atau memberikan informasi yang tidak benar."

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	OpenAIAPIKey = GetEnv("OPENAI_API_KEY")
	OpenAIModel = GetEnv("OPENAI_MODEL", "gpt-4o-mini")
	SupabaseURL = GetEnv("SUPABASE_PROJECT_URL")
	SupabaseServiceKey = GetEnv("SUPABASE_SERVICE_ROLE_KEY")
	SupabaseBucket = GetEnv("SUPABASE_BUCKET", "media")
	ChatSystemPrompt = GetEnv("CHAT_SYSTEM_PROMPT", defaultChatSystemPrompt)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if OpenAIAPIKey == "" {
		log.Println("❌ OPENAI_API_KEY belum diset, fitur chat tidak akan berfungsi!")
	} else {
		log.Println("✅ OPENAI_API_KEY berhasil dimuat.")
	}

	if SupabaseURL == "" || SupabaseServiceKey == "" {
		log.Println("❌ Konfigurasi Supabase Storage belum lengkap (SUPABASE_PROJECT_URL / SUPABASE_SERVICE_ROLE_KEY)")
	} else {
		log.Println("✅ Konfigurasi Supabase Storage berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
