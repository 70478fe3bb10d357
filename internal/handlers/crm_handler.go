package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/models"
	"crm_manager/internal/store"
)

// CRMHandler serves the customer, product and prospect screens.
type CRMHandler struct {
	customers *store.CustomerStore
	products  *store.ProductStore
	prospects *store.ProspectStore
}

func NewCRMHandler(customers *store.CustomerStore, products *store.ProductStore, prospects *store.ProspectStore) *CRMHandler {
	return &CRMHandler{customers: customers, products: products, prospects: prospects}
}

type orderRequest struct {
	ProductID string                 `json:"product_id" binding:"required"`
	Quantity  map[models.Variant]int `json:"quantity" binding:"required"`
	OrderDate time.Time              `json:"order_date"`
}

type customerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Location string         `json:"location"`
	CarModel string         `json:"car_model"`
	Notes    string         `json:"notes"`
	Tags     []string       `json:"tags"`
	Orders   []orderRequest `json:"orders"`
}

// buildOrder freezes the order totals against the product's current prices.
func (h *CRMHandler) buildOrder(req orderRequest) (models.CustomerOrder, error) {
	product, ok := h.products.Lookup(req.ProductID)
	if !ok {
		return models.CustomerOrder{}, errors.New("unknown product: " + req.ProductID)
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	totalAmount, grossProfit := models.OrderTotals(product, req.Quantity)
	return models.CustomerOrder{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		OrderDate:   orderDate,
		TotalAmount: totalAmount,
		GrossProfit: grossProfit,
	}, nil
}

func (h *CRMHandler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.customers.All()})
}

func (h *CRMHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CRMHandler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orders := make([]models.CustomerOrder, 0, len(req.Orders))
	for _, orderReq := range req.Orders {
		order, err := h.buildOrder(orderReq)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		orders = append(orders, order)
	}

	customer, err := h.customers.Add(models.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		CarModel: req.CarModel,
		Notes:    req.Notes,
		Tags:     req.Tags,
		Orders:   orders,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, order := range orders {
		if err := h.products.RecordSale(order.ProductID, order.TotalAmount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer replaces the customer's identity fields. Orders are kept as
// they are; their totals were frozen at order time and are never repriced.
func (h *CRMHandler) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	existing, err := h.customers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Location = req.Location
	existing.CarModel = req.CarModel
	existing.Notes = req.Notes
	existing.Tags = req.Tags

	customer, err := h.customers.Update(existing.ID, existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CRMHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CRMHandler) AddOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.buildOrder(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.AddOrder(c.Param("id"), order)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.products.RecordSale(order.ProductID, order.TotalAmount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CRMHandler) CustomersByDate(c *gin.Context) {
	day, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": h.customers.ByOrderDate(day)})
}

type productRequest struct {
	Name     string                                   `json:"name" binding:"required"`
	ImageURL string                                   `json:"image_url"`
	Pricing  map[models.Variant]models.VariantPricing `json:"pricing"`
	Status   string                                   `json:"status"`
}

func (h *CRMHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.products.All()})
}

func (h *CRMHandler) GetProduct(c *gin.Context) {
	product, ok := h.products.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CRMHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.products.Add(models.Product{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Pricing:  req.Pricing,
		Status:   req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CRMHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.products.Update(c.Param("id"), models.Product{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Pricing:  req.Pricing,
		Status:   req.Status,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CRMHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type prospectRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	CarModel string `json:"car_model"`
	Location string `json:"location"`
}

func (h *CRMHandler) ListProspects(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		day, err := parseDate(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"prospects": h.prospects.ByDate(day)})
		return
	}
	if monthStr := c.Query("month"); monthStr != "" {
		year, month, err := parseMonth(c.Query("year"), monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"prospects": h.prospects.ByMonth(year, month)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prospects": h.prospects.All()})
}

func (h *CRMHandler) CreateProspect(c *gin.Context) {
	var req prospectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	prospect, err := h.prospects.Add(models.Prospect{
		Name:     req.Name,
		Phone:    req.Phone,
		CarModel: req.CarModel,
		Location: req.Location,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, prospect)
}

func (h *CRMHandler) UpdateProspect(c *gin.Context) {
	var req prospectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	prospect, err := h.prospects.Update(c.Param("id"), models.Prospect{
		Name:     req.Name,
		Phone:    req.Phone,
		CarModel: req.CarModel,
		Location: req.Location,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prospect not found"})
		return
	}
	c.JSON(http.StatusOK, prospect)
}

func (h *CRMHandler) DeleteProspect(c *gin.Context) {
	if err := h.prospects.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, errors.New("invalid year")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}
	return year, time.Month(month), nil
}
