package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatbot-local/agent"
	"chatbot-local/config"
	"chatbot-local/research"
	"chatbot-local/tools"
)

func main() {
	cfg := config.Load()

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	// Set up the tool registry with the local built-ins
	registry := tools.NewRegistry()
	tools.RegisterDefaults(registry, cfg.SandboxDir)
	log.Printf("Sandbox directory: %s", cfg.SandboxDir)

	// Research tools run in mock mode without a Tavily key; they still get
	// registered so the model can probe research_status.
	researchClient := research.NewClient(cfg.TavilyAPIKey, cfg.SerperAPIKey)
	tools.RegisterResearch(registry, researchClient)
	if cfg.TavilyAPIKey == "" {
		log.Printf("No TAVILY_API_KEY - research tools run in mock mode")
	}

	// Calendar tool is auth-gated at call time
	calendarTool := tools.NewCalendarTool(
		cfg.GoogleClientID,
		cfg.GoogleSecret,
		cfg.GoogleRedirectURL,
		cfg.GoogleTokenFile,
	)
	if authURL, err := calendarTool.Init(ctx); err != nil {
		log.Printf("Calendar init warning: %v", err)
	} else if authURL != "" {
		log.Printf("Calendar needs authentication. Use /auth command in the bot.")
	} else {
		log.Printf("Calendar authenticated successfully")
	}
	registry.Register(calendarTool)

	chatAgent := agent.New(cfg.OllamaModel, cfg.OllamaURL, registry)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)
	log.Printf("Registered tools: %d", registry.Count())

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot stopped")
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go handleMessage(ctx, bot, chatAgent, calendarTool, registry, cfg, update.Message)
		}
	}
}

func handleMessage(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	chatAgent *agent.Agent,
	calendarTool *tools.CalendarTool,
	registry *tools.Registry,
	cfg *config.Config,
	message *tgbotapi.Message,
) {
	log.Printf("[%s] %s", message.From.UserName, message.Text)

	var reply string

	switch message.Command() {
	case "start":
		reply = "👋 Hello! I'm an AI assistant powered by " + cfg.OllamaModel + ".\n\n" +
			"I can:\n• Read, write and list files in my sandbox\n• Do calculations and run Python snippets\n• Search the web and research topics via Tavily\n• Check your Google Calendar\n\n" +
			"Use /tools to list everything I can call."

	case "help":
		reply = "Available commands:\n" +
			"/start - Start the bot\n" +
			"/help - Show this help message\n" +
			"/tools - List available tools\n" +
			"/auth - Connect Google Calendar\n" +
			"/authcode <code> - Complete Google auth\n\n" +
			"Or just ask me things like:\n" +
			"• \"What is 2^10?\"\n" +
			"• \"Search for the latest Go release\"\n" +
			"• \"Save a note called ideas.txt\""

	case "tools":
		reply = "🔧 Registered tools:\n" + strings.Join(registry.List(), "\n")

	case "auth":
		authURL, err := calendarTool.Init(ctx)
		if err != nil {
			reply = "⚠️ " + err.Error()
		} else if authURL == "" {
			reply = "✅ Google Calendar is already connected!"
		} else {
			reply = "🔐 To connect Google Calendar:\n\n" +
				"1. Click this link:\n" + authURL + "\n\n" +
				"2. Sign in and authorize access\n\n" +
				"3. Copy the code you receive\n\n" +
				"4. Send: /authcode YOUR_CODE"
		}

	case "authcode":
		code := strings.TrimSpace(message.CommandArguments())
		if code == "" {
			reply = "Please provide the authorization code: /authcode YOUR_CODE"
		} else {
			if err := calendarTool.CompleteAuth(ctx, code); err != nil {
				reply = "❌ Authentication failed: " + err.Error()
			} else {
				reply = "✅ Google Calendar connected!"
			}
		}

	case "":
		// Not a command, send to agent
		response, err := chatAgent.Chat(ctx, message.Text)
		if err != nil {
			log.Printf("Agent error: %v", err)
			reply = "Sorry, I couldn't process that. Make sure Ollama is running."
		} else {
			reply = response
		}

	default:
		reply = "Unknown command. Try /help"
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	msg.ReplyToMessageID = message.MessageID

	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
