package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"github.com/yourusername/autoparts-storefront/internal/usecase"
	"go.uber.org/zap"
)

const listLimit = 15

// Deps bot dependencies
type Deps struct {
	Catalog    usecase.CatalogUseCase
	Cart       usecase.CartUseCase
	Auth       usecase.AuthUseCase
	Navigation usecase.NavigationUseCase
	Admin      usecase.AdminUseCase
	Advisor    usecase.AdvisorUseCase
	Prices     PriceFormatter

	MaxUploadBytes int64
	Logger         *zap.Logger
}

// messenger Telegram API ning xabar yuboruvchi qismi
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot     *tgbotapi.BotAPI
	api     messenger
	catalog usecase.CatalogUseCase
	cart    usecase.CartUseCase
	auth    usecase.AuthUseCase
	nav     usecase.NavigationUseCase
	admin   usecase.AdminUseCase
	advisor usecase.AdvisorUseCase
	prices  PriceFormatter

	maxUploadBytes int64
	httpClient     *http.Client
	log            *zap.Logger
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, deps Deps) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newBotHandler(bot, deps)
	h.bot = bot
	return h, nil
}

func newBotHandler(api messenger, deps Deps) *BotHandler {
	return &BotHandler{
		api:            api,
		catalog:        deps.Catalog,
		cart:           deps.Cart,
		auth:           deps.Auth,
		nav:            deps.Navigation,
		admin:          deps.Admin,
		advisor:        deps.Advisor,
		prices:         deps.Prices,
		maxUploadBytes: deps.MaxUploadBytes,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		log:            logger.OrNop(deps.Logger).Named("telegram"),
	}
}

// Start botni ishga tushirish. Blocks until ctx is cancelled.
func (h *BotHandler) Start(ctx context.Context) error {
	h.log.Info("bot started", zap.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.log.Info("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	sid := sessionID(message.From.ID)
	chatID := message.Chat.ID

	// Birinchi xabarda sessiya yaratiladi
	if _, err := h.nav.Start(ctx, sid); err != nil {
		h.replyError(chatID, "session", err)
		return
	}

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, sid, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, sid, message)
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	// Oddiy matn: advisor yoqilgan bo'lsa unga, aks holda katalog qidiruvi
	if h.advisor.Enabled() {
		h.handleAsk(ctx, sid, chatID, text)
		return
	}
	h.handleSearch(ctx, sid, chatID, text)
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, sid string, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.handleStart(ctx, sid, chatID)
	case "help":
		h.sendMessage(chatID, helpMessage)
	case "catalog":
		h.handleSearch(ctx, sid, chatID, args)
	case "category":
		h.handleFilter(ctx, sid, chatID, args, func(id int) entity.NavParams { return entity.NavParams{CategoryID: id} })
	case "brand":
		h.handleFilter(ctx, sid, chatID, args, func(id int) entity.NavParams { return entity.NavParams{BrandID: id} })
	case "clear":
		h.handleClear(ctx, sid, chatID)
	case "product":
		h.handleProduct(ctx, sid, chatID, args)
	case "add":
		h.handleAdd(ctx, sid, chatID, args)
	case "cart":
		h.handleCart(ctx, sid, chatID)
	case "qty":
		h.handleQuantity(ctx, sid, chatID, args)
	case "remove":
		h.handleRemove(ctx, sid, chatID, args)
	case "checkout":
		h.handleCheckout(ctx, sid, chatID, args)
	case "login":
		h.handleLogin(ctx, sid, message, args)
	case "register":
		h.handleRegister(ctx, sid, message, args)
	case "logout":
		h.handleLogout(ctx, sid, chatID)
	case "currency":
		h.handleCurrency(ctx, sid, chatID, args)
	case "ask":
		h.handleAsk(ctx, sid, chatID, args)
	case "dashboard":
		h.handleDashboard(ctx, sid, chatID)
	case "stock":
		h.handleStock(ctx, sid, chatID, args)
	case "delete":
		h.handleDeletePrompt(ctx, sid, chatID, args)
	case "newbrand":
		h.handleNewBrand(ctx, sid, chatID, args)
	case "newcategory":
		h.handleNewCategory(ctx, sid, chatID, args)
	case "export":
		h.handleExport(ctx, sid, chatID)
	default:
		h.sendMessage(chatID, "Unknown command. /help for the list.")
	}
}

func (h *BotHandler) handleStart(ctx context.Context, sid string, chatID int64) {
	if _, err := h.nav.Navigate(ctx, sid, entity.PageHome, entity.NavParams{}); err != nil {
		h.replyError(chatID, "start", err)
		return
	}
	view, err := h.nav.Render(ctx, sid)
	if err != nil {
		h.replyError(chatID, "render home", err)
		return
	}

	h.sendMessage(chatID, welcomeMessage)
	for _, p := range view.Featured {
		h.sendProductCard(chatID, p, view.Currency)
	}
}

// handleSearch katalogni qidirish; bo'sh matn filtrlarni tozalaydi
func (h *BotHandler) handleSearch(ctx context.Context, sid string, chatID int64, query string) {
	if _, err := h.nav.Search(ctx, sid, query); err != nil {
		h.replyError(chatID, "search", err)
		return
	}
	h.sendCatalogView(ctx, sid, chatID)
}

func (h *BotHandler) handleFilter(ctx context.Context, sid string, chatID int64, args string, params func(int) entity.NavParams) {
	id, err := strconv.Atoi(args)
	if err != nil {
		h.sendTaxonomy(ctx, chatID)
		return
	}
	if _, err := h.nav.Navigate(ctx, sid, entity.PageCatalog, params(id)); err != nil {
		h.replyError(chatID, "filter", err)
		return
	}
	h.sendCatalogView(ctx, sid, chatID)
}

func (h *BotHandler) handleClear(ctx context.Context, sid string, chatID int64) {
	if _, err := h.nav.ClearFilters(ctx, sid); err != nil {
		h.replyError(chatID, "clear filters", err)
		return
	}
	h.sendCatalogView(ctx, sid, chatID)
}

func (h *BotHandler) sendCatalogView(ctx context.Context, sid string, chatID int64) {
	view, err := h.nav.Render(ctx, sid)
	if err != nil {
		h.replyError(chatID, "render catalog", err)
		return
	}
	title := "Catalog"
	if view.Filter != nil && view.Filter.Search != "" {
		title = fmt.Sprintf("Results for %q", view.Filter.Search)
	}
	h.sendMessage(chatID, formatProductList(title, view.Products, h.prices, view.Currency, listLimit))
}

// sendTaxonomy brand va kategoriya id lari
func (h *BotHandler) sendTaxonomy(ctx context.Context, chatID int64) {
	brands, err := h.catalog.Brands(ctx)
	if err != nil {
		h.replyError(chatID, "brands", err)
		return
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.replyError(chatID, "categories", err)
		return
	}

	var b strings.Builder
	b.WriteString("Categories (/category <id>):\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "%d. %s\n", c.ID, c.Name)
	}
	b.WriteString("\nBrands (/brand <id>):\n")
	for _, br := range brands {
		fmt.Fprintf(&b, "%d. %s\n", br.ID, br.Name)
	}
	h.sendMessage(chatID, b.String())
}

func (h *BotHandler) handleProduct(ctx context.Context, sid string, chatID int64, args string) {
	id, err := strconv.Atoi(args)
	if err != nil {
		h.sendMessage(chatID, "Usage: /product <id>")
		return
	}
	if _, err := h.nav.Navigate(ctx, sid, entity.PageProduct, entity.NavParams{ID: id}); err != nil {
		h.replyError(chatID, "navigate product", err)
		return
	}
	view, err := h.nav.Render(ctx, sid)
	if err != nil {
		h.replyError(chatID, "render product", err)
		return
	}
	if view.NotFound || view.Product == nil {
		h.sendMessage(chatID, "Product not found. Back to /catalog.")
		return
	}

	d := view.Product
	msg := tgbotapi.NewMessage(chatID, formatProductDetail(d, h.prices.MustFormat(d.Product.Price, view.Currency)))
	msg.ReplyMarkup = productKeyboard(d.Product)
	h.send(msg)
}

func (h *BotHandler) handleAdd(ctx context.Context, sid string, chatID int64, args string) {
	id, err := strconv.Atoi(args)
	if err != nil {
		h.sendMessage(chatID, "Usage: /add <product id>")
		return
	}
	h.addToCart(ctx, sid, chatID, id)
}

func (h *BotHandler) addToCart(ctx context.Context, sid string, chatID int64, productID int) {
	result, err := h.cart.Add(ctx, sid, productID)
	if err != nil {
		h.replyError(chatID, "add to cart", err)
		return
	}
	if result.Updated {
		h.sendMessage(chatID, fmt.Sprintf("Updated %s quantity in cart (qty %d). /cart to review.",
			result.Line.Product.Name, result.Line.Quantity))
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("%s added to cart (qty %d). /cart to review.",
		result.Line.Product.Name, result.Line.Quantity))
}

func (h *BotHandler) handleCart(ctx context.Context, sid string, chatID int64) {
	s, err := h.nav.Navigate(ctx, sid, entity.PageCart, entity.NavParams{})
	if err != nil {
		h.replyError(chatID, "navigate cart", err)
		return
	}
	view, err := h.cart.View(ctx, sid)
	if err != nil {
		h.replyError(chatID, "cart", err)
		return
	}
	h.sendMessage(chatID, formatCart(view, h.prices, s.Currency))
}

func (h *BotHandler) handleQuantity(ctx context.Context, sid string, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.sendMessage(chatID, "Usage: /qty <line> <quantity>")
		return
	}
	index, err := parseLine(fields[0])
	if err != nil {
		h.sendMessage(chatID, err.Error())
		return
	}
	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		h.sendMessage(chatID, "Quantity must be a number.")
		return
	}
	view, err := h.cart.UpdateQuantity(ctx, sid, index, qty)
	if err != nil {
		h.replyError(chatID, "update quantity", err)
		return
	}
	h.sendCart(ctx, sid, chatID, view)
}

func (h *BotHandler) handleRemove(ctx context.Context, sid string, chatID int64, args string) {
	index, err := parseLine(args)
	if err != nil {
		h.sendMessage(chatID, err.Error())
		return
	}
	view, err := h.cart.Remove(ctx, sid, index)
	if err != nil {
		h.replyError(chatID, "remove line", err)
		return
	}
	h.sendCart(ctx, sid, chatID, view)
}

func (h *BotHandler) sendCart(ctx context.Context, sid string, chatID int64, view entity.CartView) {
	s, err := h.nav.Start(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	h.sendMessage(chatID, formatCart(view, h.prices, s.Currency))
}

// handleCheckout buyurtma berish
func (h *BotHandler) handleCheckout(ctx context.Context, sid string, chatID int64, args string) {
	if _, err := h.nav.Navigate(ctx, sid, entity.PageCheckout, entity.NavParams{}); err != nil {
		h.replyError(chatID, "navigate checkout", err)
		return
	}
	view, err := h.nav.Render(ctx, sid)
	if err != nil {
		h.replyError(chatID, "render checkout", err)
		return
	}
	if view.LoginRequired {
		h.sendMessage(chatID, "Please log in to checkout: /login <email> <password>")
		return
	}
	if view.Cart == nil || view.Cart.Empty {
		h.sendMessage(chatID, "Your cart is empty. Browse parts with /catalog.")
		return
	}

	order, err := h.cart.PlaceOrder(ctx, sid, entity.ShippingAddress{Line: args})
	if err != nil {
		h.replyError(chatID, "place order", err)
		return
	}
	h.log.Info("order placed",
		zap.String("session", sid),
		zap.String("order", order.ID),
		zap.Float64("total", order.Total))
	h.sendMessage(chatID, formatOrder(order, h.prices, view.Currency))
}

// handleLogin parol bor xabarni o'chiradi
func (h *BotHandler) handleLogin(ctx context.Context, sid string, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	h.deleteMessage(chatID, message.MessageID)

	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.sendMessage(chatID, "Usage: /login <email> <password>")
		return
	}
	password := ""
	if len(fields) > 1 {
		password = fields[1]
	}

	s, err := h.auth.Login(ctx, sid, fields[0], password)
	if err != nil {
		h.replyError(chatID, "login", err)
		return
	}
	if s.User.IsAdmin() {
		h.sendMessage(chatID, fmt.Sprintf("Welcome back, %s. /dashboard is ready.", s.User.Name))
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Welcome, %s!", s.User.Name))
}

func (h *BotHandler) handleRegister(ctx context.Context, sid string, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	h.deleteMessage(chatID, message.MessageID)

	form, err := parseRegistration(args)
	if err != nil {
		h.sendMessage(chatID, err.Error())
		return
	}
	s, err := h.auth.Register(ctx, sid, form)
	if err != nil {
		h.replyError(chatID, "register", err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Account created. Welcome, %s!", s.User.Name))
}

func (h *BotHandler) handleLogout(ctx context.Context, sid string, chatID int64) {
	if _, err := h.auth.Logout(ctx, sid); err != nil {
		h.replyError(chatID, "logout", err)
		return
	}
	h.sendMessage(chatID, "You are logged out.")
}

// handleCurrency argumentsiz bo'lsa tugmalar chiqaradi
func (h *BotHandler) handleCurrency(ctx context.Context, sid string, chatID int64, args string) {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "Pick a display currency:")
		msg.ReplyMarkup = currencyKeyboard(h.prices.Currencies())
		h.send(msg)
		return
	}
	h.setCurrency(ctx, sid, chatID, args)
}

func (h *BotHandler) setCurrency(ctx context.Context, sid string, chatID int64, code string) {
	s, err := h.nav.SetCurrency(ctx, sid, entity.CurrencyCode(code))
	if err != nil {
		h.replyError(chatID, "set currency", err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Prices are now shown in %s.", s.Currency))
}

func (h *BotHandler) handleAsk(ctx context.Context, sid string, chatID int64, question string) {
	if question == "" {
		h.sendMessage(chatID, "Usage: /ask <question>")
		return
	}
	h.sendTyping(chatID)

	answer, err := h.advisor.Ask(ctx, sid, question)
	if err != nil {
		h.replyError(chatID, "advisor", err)
		return
	}
	h.sendMessage(chatID, answer)
}

// actor sessiya foydalanuvchisi
func (h *BotHandler) actor(ctx context.Context, sid string) (*entity.User, error) {
	s, err := h.nav.Start(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.User, nil
}

func (h *BotHandler) handleDashboard(ctx context.Context, sid string, chatID int64) {
	s, err := h.nav.Navigate(ctx, sid, entity.PageDashboard, entity.NavParams{})
	if err != nil {
		h.replyError(chatID, "navigate dashboard", err)
		return
	}
	info, err := h.admin.CatalogInfo(ctx, s.User)
	if err != nil {
		h.replyError(chatID, "dashboard", err)
		return
	}
	actions, err := h.admin.Actions(ctx, s.User, 5)
	if err != nil {
		h.replyError(chatID, "actions", err)
		return
	}
	h.sendMessage(chatID, formatCatalogInfo(info, h.prices.MustFormat(info.InventoryValue, s.Currency), actions))
}

// handleStock /stock <id> <+n|-n|n>
func (h *BotHandler) handleStock(ctx context.Context, sid string, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.sendMessage(chatID, "Usage: /stock <id> <+1|-1|n>")
		return
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		h.sendMessage(chatID, "Product id must be a number.")
		return
	}
	value, isDelta, err := parseStockArg(fields[1])
	if err != nil {
		h.sendMessage(chatID, err.Error())
		return
	}
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}

	var product entity.Product
	if isDelta {
		product, err = h.admin.AdjustStock(ctx, user, id, value)
	} else {
		product, err = h.admin.SetStock(ctx, user, id, value)
	}
	if err != nil {
		h.replyError(chatID, "stock", err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("%s stock: %d (%s)", product.Name, product.Stock, stockLabel(product)))
}

func (h *BotHandler) handleDeletePrompt(ctx context.Context, sid string, chatID int64, args string) {
	id, err := strconv.Atoi(args)
	if err != nil {
		h.sendMessage(chatID, "Usage: /delete <product id>")
		return
	}
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	if !user.IsAdmin() {
		h.replyError(chatID, "delete", entity.ErrForbidden)
		return
	}
	detail, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.replyError(chatID, "delete", err)
		return
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Are you sure you want to delete %s?", detail.Product.Name))
	msg.ReplyMarkup = deleteKeyboard(id)
	h.send(msg)
}

func (h *BotHandler) handleNewBrand(ctx context.Context, sid string, chatID int64, name string) {
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	brand, err := h.admin.CreateBrand(ctx, user, name)
	if err != nil {
		h.replyError(chatID, "create brand", err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Brand #%d %s created.", brand.ID, brand.Name))
}

func (h *BotHandler) handleNewCategory(ctx context.Context, sid string, chatID int64, name string) {
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	category, err := h.admin.CreateCategory(ctx, user, name)
	if err != nil {
		h.replyError(chatID, "create category", err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Category #%d %s created.", category.ID, category.Name))
}

// handleExport katalogni Excel hujjat sifatida yuborish
func (h *BotHandler) handleExport(ctx context.Context, sid string, chatID int64) {
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	data, err := h.admin.ExportCatalog(ctx, user)
	if err != nil {
		h.replyError(chatID, "export", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405")),
		Bytes: data,
	})
	doc.Caption = "Catalog export"
	h.send(doc)
}

// handleDocumentMessage fayl yuborilganda
func (h *BotHandler) handleDocumentMessage(ctx context.Context, sid string, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	if !user.IsAdmin() {
		h.sendMessage(chatID, "Only admins can upload catalog files. /login first.")
		return
	}

	doc := message.Document
	if h.maxUploadBytes > 0 && int64(doc.FileSize) > h.maxUploadBytes {
		h.sendMessage(chatID, fmt.Sprintf("File is too large (max %d MB).", h.maxUploadBytes>>20))
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "Only Excel files (.xlsx) are accepted.")
		return
	}

	h.sendMessage(chatID, "Processing the file...")

	fileBytes, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		h.log.Error("file download failed", zap.String("file", doc.FileName), zap.Error(err))
		h.sendMessage(chatID, "Could not download the file.")
		return
	}

	count, err := h.admin.ImportCatalog(ctx, user, fileBytes, doc.FileName)
	if err != nil {
		h.log.Warn("catalog import failed", zap.String("file", doc.FileName), zap.Error(err))
		h.sendMessage(chatID, fmt.Sprintf("Import failed: %v", err))
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Catalog updated.\n\nImported products: %d\nFile: %s", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if h.bot == nil {
		return nil, fmt.Errorf("bot is not connected")
	}
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if h.maxUploadBytes > 0 {
		return io.ReadAll(io.LimitReader(resp.Body, h.maxUploadBytes))
	}
	return io.ReadAll(resp.Body)
}

// handleCallback inline tugmalar
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	sid := sessionID(cq.From.ID)
	chatID := cq.Message.Chat.ID

	// Callback ga javob (spinnerni to'xtatish)
	if _, err := h.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.log.Warn("callback answer failed", zap.Error(err))
	}

	if _, err := h.nav.Start(ctx, sid); err != nil {
		h.replyError(chatID, "session", err)
		return
	}

	action, arg := parseCallback(cq.Data)
	switch action {
	case cbAdd:
		if id, err := strconv.Atoi(arg); err == nil {
			h.addToCart(ctx, sid, chatID, id)
		}
	case cbProduct:
		h.handleProduct(ctx, sid, chatID, arg)
	case cbCurrency:
		h.setCurrency(ctx, sid, chatID, arg)
	case cbDeleteYes:
		h.completeDelete(ctx, sid, chatID, cq.Message.MessageID, arg)
	case cbDeleteNo:
		h.editMessage(chatID, cq.Message.MessageID, "Deletion cancelled.")
	default:
		h.log.Warn("unknown callback", zap.String("data", cq.Data))
	}
}

func (h *BotHandler) completeDelete(ctx context.Context, sid string, chatID int64, messageID int, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return
	}
	user, err := h.actor(ctx, sid)
	if err != nil {
		h.replyError(chatID, "session", err)
		return
	}
	if err := h.admin.DeleteProduct(ctx, user, id); err != nil {
		h.replyError(chatID, "delete product", err)
		return
	}
	h.editMessage(chatID, messageID, fmt.Sprintf("Product #%d deleted.", id))
}

func (h *BotHandler) sendProductCard(chatID int64, p entity.Product, code entity.CurrencyCode) {
	msg := tgbotapi.NewMessage(chatID, formatProductLine(p, h.prices.MustFormat(p.Price, code)))
	msg.ReplyMarkup = productKeyboard(p)
	h.send(msg)
}

// replyError xatoni log qilib foydalanuvchiga xabar berish
func (h *BotHandler) replyError(chatID int64, op string, err error) {
	h.log.Warn("bot operation failed", zap.String("op", op), zap.Int64("chat_id", chatID), zap.Error(err))
	h.sendMessage(chatID, userMessage(err))
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, truncateString(text, maxMessageLen)))
}

func (h *BotHandler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		h.log.Error("send failed", zap.Error(err))
	}
}

func (h *BotHandler) editMessage(chatID int64, messageID int, text string) {
	h.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func (h *BotHandler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.log.Debug("delete message failed", zap.Error(err))
	}
}

func (h *BotHandler) sendTyping(chatID int64) {
	if _, err := h.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.log.Debug("chat action failed", zap.Error(err))
	}
}

const welcomeMessage = `Welcome to Vandrid Auto Parts!

Quality parts for Toyota, Honda, BMW, Ford, Nissan and more.

/catalog to browse, /catalog <text> to search
/cart to review your cart
/ask <question> for help picking the right part

Featured parts:`

const helpMessage = `Shopping:
/catalog [text] - browse or search parts
/category <id>, /brand <id> - filter (no id lists them)
/clear - clear filters
/product <id> - part details
/add <id> - add to cart
/cart - view cart
/qty <line> <n> - change quantity
/remove <line> - remove a line
/checkout <address> - place the order
/currency [code] - display currency
/ask <question> - parts advisor

Account:
/login <email> <password>
/register name|email|phone|password|password
/logout

Admin:
/dashboard - catalog stats and recent actions
/stock <id> <+1|-1|n> - adjust or set stock
/delete <id> - delete a product
/newbrand <name>, /newcategory <name>
/export - download the catalog as Excel
Send an .xlsx file to import products.`
