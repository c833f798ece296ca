package handler

import (
	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/middleware"
)

// crud bundles the route set for one collection; nil slots are not
// registered (employees and audit-logs are read-only).
type crud struct {
	list, create, get, update, del gin.HandlerFunc
}

func mount(g *gin.RouterGroup, name string, policy middleware.Policy, r crud) {
	grp := g.Group("/"+name, middleware.Require(policy))
	if r.list != nil {
		grp.GET("/", r.list)
	}
	if r.create != nil {
		grp.POST("/", r.create)
	}
	if r.get != nil {
		grp.GET("/:id/", r.get)
	}
	if r.update != nil {
		grp.PUT("/:id/", r.update)
		grp.PATCH("/:id/", r.update)
	}
	if r.del != nil {
		grp.DELETE("/:id/", r.del)
	}
}

func (h *Handler) Router(rl *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.POST("/api-token-auth/", middleware.RateLimit(rl), h.TokenAuth)

	api := r.Group("/api", middleware.Auth(h.secret))

	api.GET("/me/", h.Me)
	api.PATCH("/me/", h.UpdateMe)
	api.GET("/analytics/", middleware.Require(middleware.AdminOnly), h.Analytics)

	mount(api, "clients", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListClients, create: h.CreateClient, get: h.GetClient,
		update: h.UpdateClient, del: h.DeleteClient,
	})
	mount(api, "appointments", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListAppointments, create: h.CreateAppointment, get: h.GetAppointment,
		update: h.UpdateAppointment, del: h.DeleteAppointment,
	})
	mount(api, "invoices", middleware.AdminOnly, crud{
		list: h.ListInvoices, create: h.CreateInvoice, get: h.GetInvoice,
		update: h.UpdateInvoice, del: h.DeleteInvoice,
	})
	mount(api, "equipment", middleware.AdminOrTechnicianReadOnly, crud{
		list: h.ListEquipment, create: h.CreateEquipment, get: h.GetEquipment,
		update: h.UpdateEquipment, del: h.DeleteEquipment,
	})
	mount(api, "equipment-database", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListEquipmentDB, create: h.CreateEquipmentDB, get: h.GetEquipmentDB,
		update: h.UpdateEquipmentDB, del: h.DeleteEquipmentDB,
	})
	mount(api, "service-history", middleware.AdminOrTechnicianCreateOrReadOnly, crud{
		list: h.ListServiceHistory, create: h.CreateServiceHistory, get: h.GetServiceHistory,
		update: h.UpdateServiceHistory, del: h.DeleteServiceHistory,
	})
	mount(api, "employees", middleware.AdminOnly, crud{
		list: h.ListEmployees, get: h.GetEmployee,
	})
	mount(api, "time-logs", middleware.AdminOnly, crud{
		list: h.ListTimeLogs, create: h.CreateTimeLog, get: h.GetTimeLog,
		update: h.UpdateTimeLog, del: h.DeleteTimeLog,
	})
	mount(api, "pto-requests", middleware.AdminOnly, crud{
		list: h.ListPTORequests, create: h.CreatePTORequest, get: h.GetPTORequest,
		update: h.UpdatePTORequest, del: h.DeletePTORequest,
	})
	mount(api, "parts", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListParts, create: h.CreatePart, get: h.GetPart,
		update: h.UpdatePart, del: h.DeletePart,
	})
	mount(api, "job-types", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListJobTypes, create: h.CreateJobType, get: h.GetJobType,
		update: h.UpdateJobType, del: h.DeleteJobType,
	})
	mount(api, "attachments", middleware.AdminOrSecretaryOrTechnicianCreateOrReadOnly, crud{
		list: h.ListAttachments, create: h.CreateAttachment, get: h.GetAttachment,
		del: h.DeleteAttachment,
	})
	api.GET("/attachments/:id/download/",
		middleware.Require(middleware.AdminOrSecretaryOrTechnicianCreateOrReadOnly), h.DownloadAttachment)
	mount(api, "notifications", middleware.AdminOnly, crud{
		list: h.ListNotifications, create: h.CreateNotification, get: h.GetNotification,
		update: h.UpdateNotification, del: h.DeleteNotification,
	})
	mount(api, "notes", middleware.AdminOrSecretaryOrTechnicianCreateOrReadOnly, crud{
		list: h.ListNotes, create: h.CreateNote, get: h.GetNote,
		update: h.UpdateNote, del: h.DeleteNote,
	})
	mount(api, "reminders", middleware.AdminOrSecretaryOrTechnicianReadOnly, crud{
		list: h.ListReminders, create: h.CreateReminder, get: h.GetReminder,
		update: h.UpdateReminder, del: h.DeleteReminder,
	})
	mount(api, "audit-logs", middleware.AdminOnly, crud{
		list: h.ListAuditLogs, get: h.GetAuditLog,
	})
	mount(api, "user-profiles", middleware.Authenticated, crud{
		list: h.ListProfiles, create: h.CreateProfile, get: h.GetProfile,
		update: h.UpdateProfile, del: h.DeleteProfile,
	})

	return r
}
