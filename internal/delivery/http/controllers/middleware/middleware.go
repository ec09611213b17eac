package middleware

const ClientIDCtx = "client_id"
